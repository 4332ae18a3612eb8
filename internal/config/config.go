// Package config loads simulation configuration from TOML or YAML
// files with environment overrides, and builds the validated parameter
// bundle and weather source the engine consumes.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/san-kum/heliosim/internal/params"
	"github.com/san-kum/heliosim/internal/timeseries"
	"github.com/san-kum/heliosim/internal/weather"
)

// EnvPrefix is the prefix for environment overrides. A double
// underscore separates table from key: HELIOSIM_TANK__MASS_KG
// overrides tank.mass_kg.
const EnvPrefix = "HELIOSIM_"

// Weather kinds accepted in the [weather] section.
const (
	KindSynthetic = "synthetic"
	KindCSV       = "csv"
)

type CollectorConfig struct {
	AreaM2              float64 `koanf:"area_m2"`
	HeatRemovalFactor   float64 `koanf:"heat_removal_factor"`
	OpticalEfficiency   float64 `koanf:"optical_efficiency"`
	LossCoefficientWM2K float64 `koanf:"loss_coefficient_w_m2k"`
}

type TankConfig struct {
	MassKg              float64 `koanf:"mass_kg"`
	CpJKgK              float64 `koanf:"cp_j_kgk"`
	UAWK                float64 `koanf:"ua_w_k"`
	InitialTemperatureK float64 `koanf:"initial_temperature_k"`
	RoomTemperatureK    float64 `koanf:"room_temperature_k"`
}

type PumpConfig struct {
	MassFlowKgS float64 `koanf:"mass_flow_kg_s"`
}

type ControlConfig struct {
	Enabled          bool    `koanf:"enabled"`
	DeltaTOnK        float64 `koanf:"delta_t_on_k"`
	DeltaTOffK       float64 `koanf:"delta_t_off_k"`
	MinIrradianceWM2 float64 `koanf:"min_irradiance_w_m2"`
}

type SimulationConfig struct {
	T0S       float64 `koanf:"t0_s"`
	DtS       float64 `koanf:"dt_s"`
	DurationS float64 `koanf:"duration_s"`
}

type WeatherConfig struct {
	Kind string `koanf:"kind"`

	// Synthetic fields.
	SunriseS          float64 `koanf:"sunrise_s"`
	SunsetS           float64 `koanf:"sunset_s"`
	PeakIrradianceWM2 float64 `koanf:"peak_irradiance_w_m2"`
	AmbientMeanK      float64 `koanf:"ambient_mean_k"`
	AmbientAmplitudeK float64 `koanf:"ambient_amplitude_k"`
	AmbientPeriodS    float64 `koanf:"ambient_period_s"`
	// AmbientPeakS < 0 means "derive from the period": 0.625 of the
	// period, i.e. 15:00 on a midnight-based 24 h clock.
	AmbientPeakS float64 `koanf:"ambient_peak_s"`

	// CSV fields.
	CSVPath          string `koanf:"csv_path"`
	TimeColumn       string `koanf:"time_column"`
	IrradianceColumn string `koanf:"irradiance_column"`
	AmbientColumn    string `koanf:"ambient_column"`
	Extrapolation    string `koanf:"extrapolation"`
}

// Config mirrors the file layout: one table per parameter set plus the
// weather section.
type Config struct {
	Collector  CollectorConfig  `koanf:"collector"`
	Tank       TankConfig       `koanf:"tank"`
	Pump       PumpConfig       `koanf:"pump"`
	Control    ControlConfig    `koanf:"control"`
	Simulation SimulationConfig `koanf:"simulation"`
	Weather    WeatherConfig    `koanf:"weather"`

	baseDir string
}

// Default returns the documented per-field defaults: a 2 m^2 collector
// charging a 200 l tank over a synthetic 24 h clear day.
func Default() *Config {
	return &Config{
		Collector: CollectorConfig{
			AreaM2:              2.0,
			HeatRemovalFactor:   0.9,
			OpticalEfficiency:   0.75,
			LossCoefficientWM2K: 5.0,
		},
		Tank: TankConfig{
			MassKg:              200,
			CpJKgK:              4180,
			UAWK:                3,
			InitialTemperatureK: 293.15,
			RoomTemperatureK:    293.15,
		},
		Pump: PumpConfig{MassFlowKgS: 0.05},
		Control: ControlConfig{
			Enabled:          true,
			DeltaTOnK:        2,
			DeltaTOffK:       1,
			MinIrradianceWM2: 25,
		},
		Simulation: SimulationConfig{T0S: 0, DtS: 10, DurationS: 86400},
		Weather: WeatherConfig{
			Kind:              KindSynthetic,
			SunriseS:          6 * 3600,
			SunsetS:           18 * 3600,
			PeakIrradianceWM2: 850,
			AmbientMeanK:      293.15,
			AmbientAmplitudeK: 6,
			AmbientPeriodS:    24 * 3600,
			AmbientPeakS:      -1,
			Extrapolation:     "clamp",
		},
	}
}

// Load reads the file at path (TOML or YAML by extension), applies
// defaults underneath and HELIOSIM_ environment variables on top, and
// validates the result. An empty path yields the validated defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	baseDir := "."
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		baseDir = filepath.Dir(path)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, EnvPrefix)
			key = strings.ReplaceAll(strings.ToLower(key), "__", ".")
			return key, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.baseDir = baseDir

	if cfg.Weather.AmbientPeakS < 0 {
		cfg.Weather.AmbientPeakS = 0.625 * cfg.Weather.AmbientPeriodS
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config extension %q (expected .toml, .yaml or .yml)", ext)
	}
}

// Bundle converts the scalar sections to the engine's parameter set.
func (c *Config) Bundle() params.Bundle {
	return params.Bundle{
		Collector: params.Collector{
			AreaM2:              c.Collector.AreaM2,
			HeatRemovalFactor:   c.Collector.HeatRemovalFactor,
			OpticalEfficiency:   c.Collector.OpticalEfficiency,
			LossCoefficientWM2K: c.Collector.LossCoefficientWM2K,
		},
		Tank: params.Tank{
			MassKg:              c.Tank.MassKg,
			CpJKgK:              c.Tank.CpJKgK,
			UAWK:                c.Tank.UAWK,
			InitialTemperatureK: c.Tank.InitialTemperatureK,
			RoomTemperatureK:    c.Tank.RoomTemperatureK,
		},
		Pump: params.Pump{MassFlowKgS: c.Pump.MassFlowKgS},
		Control: params.Control{
			Enabled:          c.Control.Enabled,
			DeltaTOnK:        c.Control.DeltaTOnK,
			DeltaTOffK:       c.Control.DeltaTOffK,
			MinIrradianceWM2: c.Control.MinIrradianceWM2,
		},
		Simulation: params.Simulation{
			T0S:       c.Simulation.T0S,
			DtS:       c.Simulation.DtS,
			DurationS: c.Simulation.DurationS,
		},
	}
}

// Validate checks the bundle and the weather section.
func (c *Config) Validate() error {
	if err := c.Bundle().Validate(); err != nil {
		return err
	}
	switch c.Weather.Kind {
	case KindSynthetic:
		return c.syntheticConfig().Validate()
	case KindCSV:
		if c.Weather.CSVPath == "" {
			return fmt.Errorf("weather.csv_path is required for weather.kind=%q", KindCSV)
		}
		if _, err := timeseries.ParseExtrapolation(c.Weather.Extrapolation); err != nil {
			return fmt.Errorf("weather.extrapolation: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported weather.kind %q (expected %q or %q)",
			c.Weather.Kind, KindSynthetic, KindCSV)
	}
}

func (c *Config) syntheticConfig() weather.SyntheticConfig {
	return weather.SyntheticConfig{
		SunriseS:          c.Weather.SunriseS,
		SunsetS:           c.Weather.SunsetS,
		PeakIrradianceWM2: c.Weather.PeakIrradianceWM2,
		AmbientMeanK:      c.Weather.AmbientMeanK,
		AmbientAmplitudeK: c.Weather.AmbientAmplitudeK,
		AmbientPeriodS:    c.Weather.AmbientPeriodS,
		AmbientPeakS:      c.Weather.AmbientPeakS,
	}
}

// BuildWeather constructs the configured weather source. CSV parsing
// happens here, once, before any simulation loop. Relative CSV paths
// resolve against the config file's directory.
func (c *Config) BuildWeather() (weather.Source, error) {
	switch c.Weather.Kind {
	case KindSynthetic:
		return weather.NewSynthetic(c.syntheticConfig())
	case KindCSV:
		mode, err := timeseries.ParseExtrapolation(c.Weather.Extrapolation)
		if err != nil {
			return nil, fmt.Errorf("weather.extrapolation: %w", err)
		}
		path := c.Weather.CSVPath
		if !filepath.IsAbs(path) && c.baseDir != "" {
			path = filepath.Join(c.baseDir, path)
		}
		return weather.LoadCSV(weather.CSVConfig{
			Path:             path,
			TimeColumn:       c.Weather.TimeColumn,
			IrradianceColumn: c.Weather.IrradianceColumn,
			AmbientColumn:    c.Weather.AmbientColumn,
			Extrapolation:    mode,
		})
	default:
		return nil, fmt.Errorf("unsupported weather.kind %q", c.Weather.Kind)
	}
}
