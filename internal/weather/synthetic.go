package weather

import (
	"fmt"
	"math"
)

// SyntheticConfig parameterizes the built-in clear-day weather model.
type SyntheticConfig struct {
	SunriseS          float64
	SunsetS           float64
	PeakIrradianceWM2 float64
	AmbientMeanK      float64
	AmbientAmplitudeK float64
	AmbientPeriodS    float64
	// AmbientPeakS is the wall-clock time at which the ambient cosine
	// peaks. Defaults (in the config layer) to 0.625 of the period,
	// i.e. 15:00 for a 24 h day starting at midnight.
	AmbientPeakS float64
}

func (c SyntheticConfig) Validate() error {
	if c.SunsetS <= c.SunriseS {
		return fmt.Errorf("weather.sunset_s must be > weather.sunrise_s, got %v <= %v", c.SunsetS, c.SunriseS)
	}
	if c.PeakIrradianceWM2 < 0 {
		return fmt.Errorf("weather.peak_irradiance_w_m2 must be >= 0, got %v", c.PeakIrradianceWM2)
	}
	if c.AmbientMeanK < 0 {
		return fmt.Errorf("weather.ambient_mean_k must be >= 0, got %v", c.AmbientMeanK)
	}
	if c.AmbientAmplitudeK < 0 {
		return fmt.Errorf("weather.ambient_amplitude_k must be >= 0, got %v", c.AmbientAmplitudeK)
	}
	if c.AmbientPeriodS <= 0 {
		return fmt.Errorf("weather.ambient_period_s must be > 0, got %v", c.AmbientPeriodS)
	}
	return nil
}

// Synthetic is an analytic clear-day weather source: a half-sine
// irradiance pulse between sunrise and sunset, and a cosine ambient
// temperature peaking at AmbientPeakS. Both are pure functions of
// wall-clock time.
type Synthetic struct {
	cfg SyntheticConfig
}

func NewSynthetic(cfg SyntheticConfig) (*Synthetic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Synthetic{cfg: cfg}, nil
}

func (s *Synthetic) IrradianceWM2(t float64) (float64, error) {
	c := s.cfg
	if t < c.SunriseS || t > c.SunsetS {
		return 0, nil
	}
	// Half-sine pulse: zero at both ends, peak at solar noon.
	x := (t - c.SunriseS) / (c.SunsetS - c.SunriseS)
	return c.PeakIrradianceWM2 * (1 - math.Cos(math.Pi*x)) / 2, nil
}

func (s *Synthetic) AmbientTemperatureK(t float64) (float64, error) {
	c := s.cfg
	return c.AmbientMeanK + c.AmbientAmplitudeK*math.Cos(2*math.Pi*(t-c.AmbientPeakS)/c.AmbientPeriodS), nil
}
