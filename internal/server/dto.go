package server

import (
	"github.com/san-kum/heliosim/internal/config"
	"github.com/san-kum/heliosim/internal/params"
	"github.com/san-kum/heliosim/internal/weather"
)

// Request DTOs mirror the config file sections. Binding decodes onto a
// defaulted value, so absent fields and absent sections keep their
// documented defaults.

type collectorInput struct {
	AreaM2              float64 `json:"area_m2"`
	HeatRemovalFactor   float64 `json:"heat_removal_factor"`
	OpticalEfficiency   float64 `json:"optical_efficiency"`
	LossCoefficientWM2K float64 `json:"loss_coefficient_w_m2k"`
}

type tankInput struct {
	MassKg              float64 `json:"mass_kg"`
	CpJKgK              float64 `json:"cp_j_kgk"`
	UAWK                float64 `json:"ua_w_k"`
	InitialTemperatureK float64 `json:"initial_temperature_k"`
	RoomTemperatureK    float64 `json:"room_temperature_k"`
}

type pumpInput struct {
	MassFlowKgS float64 `json:"mass_flow_kg_s"`
}

type controlInput struct {
	Enabled          *bool   `json:"enabled"`
	DeltaTOnK        float64 `json:"delta_t_on_k"`
	DeltaTOffK       float64 `json:"delta_t_off_k"`
	MinIrradianceWM2 float64 `json:"min_irradiance_w_m2"`
}

type simulationInput struct {
	T0S       float64 `json:"t0_s"`
	DtS       float64 `json:"dt_s"`
	DurationS float64 `json:"duration_s"`
}

type weatherInput struct {
	SunriseS          float64 `json:"sunrise_s"`
	SunsetS           float64 `json:"sunset_s"`
	PeakIrradianceWM2 float64 `json:"peak_irradiance_w_m2"`
	AmbientMeanK      float64 `json:"ambient_mean_k"`
	AmbientAmplitudeK float64 `json:"ambient_amplitude_k"`
	AmbientPeriodS    float64 `json:"ambient_period_s"`
	AmbientPeakS      float64 `json:"ambient_peak_s"`
}

type simulateRequest struct {
	Solver     string          `json:"solver"`
	Collector  collectorInput  `json:"collector"`
	Tank       tankInput       `json:"tank"`
	Pump       pumpInput       `json:"pump"`
	Control    controlInput    `json:"control"`
	Simulation simulationInput `json:"simulation"`
	Weather    weatherInput    `json:"weather"`
}

type simulateResponse struct {
	TimesS              []float64          `json:"times_s"`
	TankTemperatureK    []float64          `json:"tank_temperature_k"`
	AmbientTemperatureK []float64          `json:"ambient_temperature_k"`
	IrradianceWM2       []float64          `json:"irradiance_w_m2"`
	PumpOn              []bool             `json:"pump_on"`
	Metrics             map[string]float64 `json:"metrics"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// defaultRequest seeds a request with the same defaults the config
// loader uses, so CLI and API runs agree on untouched parameters.
func defaultRequest() simulateRequest {
	d := config.Default()
	return simulateRequest{
		Solver: "rk4",
		Collector: collectorInput{
			AreaM2:              d.Collector.AreaM2,
			HeatRemovalFactor:   d.Collector.HeatRemovalFactor,
			OpticalEfficiency:   d.Collector.OpticalEfficiency,
			LossCoefficientWM2K: d.Collector.LossCoefficientWM2K,
		},
		Tank: tankInput{
			MassKg:              d.Tank.MassKg,
			CpJKgK:              d.Tank.CpJKgK,
			UAWK:                d.Tank.UAWK,
			InitialTemperatureK: d.Tank.InitialTemperatureK,
			RoomTemperatureK:    d.Tank.RoomTemperatureK,
		},
		Pump: pumpInput{MassFlowKgS: d.Pump.MassFlowKgS},
		Control: controlInput{
			DeltaTOnK:        d.Control.DeltaTOnK,
			DeltaTOffK:       d.Control.DeltaTOffK,
			MinIrradianceWM2: d.Control.MinIrradianceWM2,
		},
		Simulation: simulationInput{
			T0S:       d.Simulation.T0S,
			DtS:       d.Simulation.DtS,
			DurationS: d.Simulation.DurationS,
		},
		Weather: weatherInput{
			SunriseS:          d.Weather.SunriseS,
			SunsetS:           d.Weather.SunsetS,
			PeakIrradianceWM2: d.Weather.PeakIrradianceWM2,
			AmbientMeanK:      d.Weather.AmbientMeanK,
			AmbientAmplitudeK: d.Weather.AmbientAmplitudeK,
			AmbientPeriodS:    d.Weather.AmbientPeriodS,
			AmbientPeakS:      d.Weather.AmbientPeakS,
		},
	}
}

func (r simulateRequest) bundle() params.Bundle {
	enabled := true
	if r.Control.Enabled != nil {
		enabled = *r.Control.Enabled
	}
	return params.Bundle{
		Collector: params.Collector{
			AreaM2:              r.Collector.AreaM2,
			HeatRemovalFactor:   r.Collector.HeatRemovalFactor,
			OpticalEfficiency:   r.Collector.OpticalEfficiency,
			LossCoefficientWM2K: r.Collector.LossCoefficientWM2K,
		},
		Tank: params.Tank{
			MassKg:              r.Tank.MassKg,
			CpJKgK:              r.Tank.CpJKgK,
			UAWK:                r.Tank.UAWK,
			InitialTemperatureK: r.Tank.InitialTemperatureK,
			RoomTemperatureK:    r.Tank.RoomTemperatureK,
		},
		Pump: params.Pump{MassFlowKgS: r.Pump.MassFlowKgS},
		Control: params.Control{
			Enabled:          enabled,
			DeltaTOnK:        r.Control.DeltaTOnK,
			DeltaTOffK:       r.Control.DeltaTOffK,
			MinIrradianceWM2: r.Control.MinIrradianceWM2,
		},
		Simulation: params.Simulation{
			T0S:       r.Simulation.T0S,
			DtS:       r.Simulation.DtS,
			DurationS: r.Simulation.DurationS,
		},
	}
}

func (r simulateRequest) weatherConfig() weather.SyntheticConfig {
	peak := r.Weather.AmbientPeakS
	if peak < 0 {
		peak = 0.625 * r.Weather.AmbientPeriodS
	}
	return weather.SyntheticConfig{
		SunriseS:          r.Weather.SunriseS,
		SunsetS:           r.Weather.SunsetS,
		PeakIrradianceWM2: r.Weather.PeakIrradianceWM2,
		AmbientMeanK:      r.Weather.AmbientMeanK,
		AmbientAmplitudeK: r.Weather.AmbientAmplitudeK,
		AmbientPeriodS:    r.Weather.AmbientPeriodS,
		AmbientPeakS:      peak,
	}
}
