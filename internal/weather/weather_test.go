package weather

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/heliosim/internal/timeseries"
)

func defaultSynthetic(t *testing.T) *Synthetic {
	t.Helper()
	s, err := NewSynthetic(SyntheticConfig{
		SunriseS:          21600,
		SunsetS:           64800,
		PeakIrradianceWM2: 850,
		AmbientMeanK:      293.15,
		AmbientAmplitudeK: 6,
		AmbientPeriodS:    86400,
		AmbientPeakS:      54000,
	})
	if err != nil {
		t.Fatalf("NewSynthetic failed: %v", err)
	}
	return s
}

func TestSyntheticIrradiancePulse(t *testing.T) {
	s := defaultSynthetic(t)

	// Dark outside the sun window.
	for _, tm := range []float64{0, 21599.9, 64800.1, 86400} {
		g, err := s.IrradianceWM2(tm)
		if err != nil {
			t.Fatalf("IrradianceWM2(%v): %v", tm, err)
		}
		if g != 0 {
			t.Errorf("expected 0 at t=%v, got %v", tm, g)
		}
	}

	// Zero exactly at sunrise and sunset.
	for _, tm := range []float64{21600, 64800} {
		g, _ := s.IrradianceWM2(tm)
		if math.Abs(g) > 1e-9 {
			t.Errorf("expected ~0 at edge t=%v, got %v", tm, g)
		}
	}

	// Peak at solar noon.
	g, _ := s.IrradianceWM2((21600 + 64800) / 2)
	if math.Abs(g-850) > 1e-9 {
		t.Errorf("expected peak 850 at noon, got %v", g)
	}

	// Half the peak a quarter into the window.
	g, _ = s.IrradianceWM2(21600 + (64800-21600)/4)
	want := 850 * (1 - math.Cos(math.Pi/4)) / 2
	if math.Abs(g-want) > 1e-9 {
		t.Errorf("expected %v at quarter window, got %v", want, g)
	}
}

func TestSyntheticAmbientCosine(t *testing.T) {
	s := defaultSynthetic(t)

	// Maximum at the configured peak time.
	a, err := s.AmbientTemperatureK(54000)
	if err != nil {
		t.Fatalf("AmbientTemperatureK: %v", err)
	}
	if math.Abs(a-(293.15+6)) > 1e-9 {
		t.Errorf("expected max %v at peak time, got %v", 293.15+6.0, a)
	}

	// Minimum half a period away.
	a, _ = s.AmbientTemperatureK(54000 - 43200)
	if math.Abs(a-(293.15-6)) > 1e-9 {
		t.Errorf("expected min %v half a period from peak, got %v", 293.15-6.0, a)
	}

	// Mean a quarter period away.
	a, _ = s.AmbientTemperatureK(54000 + 21600)
	if math.Abs(a-293.15) > 1e-9 {
		t.Errorf("expected mean at quarter period, got %v", a)
	}
}

func TestSyntheticConfigValidation(t *testing.T) {
	cfg := SyntheticConfig{
		SunriseS:          64800,
		SunsetS:           21600,
		PeakIrradianceWM2: 850,
		AmbientMeanK:      293.15,
		AmbientPeriodS:    86400,
	}
	if _, err := NewSynthetic(cfg); err == nil {
		t.Error("expected error for sunset before sunrise")
	}

	cfg.SunriseS, cfg.SunsetS = 21600, 64800
	cfg.AmbientPeriodS = 0
	if _, err := NewSynthetic(cfg); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestReadCSV(t *testing.T) {
	data := "time_s,irradiance_w_m2,ambient_k\n0,0,290\n3600,500,292\n7200,0,294\n"

	src, err := ReadCSV(strings.NewReader(data), CSVConfig{Extrapolation: timeseries.Clamp})
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	g, err := src.IrradianceWM2(1800)
	if err != nil {
		t.Fatalf("IrradianceWM2: %v", err)
	}
	if g != 250 {
		t.Errorf("expected interpolated 250, got %v", g)
	}

	a, _ := src.AmbientTemperatureK(5400)
	if a != 293 {
		t.Errorf("expected interpolated 293, got %v", a)
	}

	// Clamp outside the span.
	g, _ = src.IrradianceWM2(-100)
	if g != 0 {
		t.Errorf("expected clamped 0 before start, got %v", g)
	}
	a, _ = src.AmbientTemperatureK(100000)
	if a != 294 {
		t.Errorf("expected clamped 294 after end, got %v", a)
	}
}

func TestReadCSVCustomColumns(t *testing.T) {
	data := "t,g,temp\n0,100,290\n10,200,291\n"

	src, err := ReadCSV(strings.NewReader(data), CSVConfig{
		TimeColumn:       "t",
		IrradianceColumn: "g",
		AmbientColumn:    "temp",
	})
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	g, _ := src.IrradianceWM2(5)
	if g != 150 {
		t.Errorf("expected 150, got %v", g)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"one data row", "time_s,irradiance_w_m2,ambient_k\n0,0,290\n", "at least 2"},
		{"missing column", "time_s,irradiance_w_m2\n0,0\n10,1\n", "ambient_k"},
		{"non numeric", "time_s,irradiance_w_m2,ambient_k\n0,abc,290\n10,1,291\n", "irradiance_w_m2"},
		{"times not increasing", "time_s,irradiance_w_m2,ambient_k\n10,0,290\n10,1,291\n", "strictly increasing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data), CSVConfig{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestCSVErrorMode(t *testing.T) {
	data := "time_s,irradiance_w_m2,ambient_k\n0,0,290\n10,1,291\n"
	src, err := ReadCSV(strings.NewReader(data), CSVConfig{Extrapolation: timeseries.Error})
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if _, err := src.IrradianceWM2(11); err == nil {
		t.Error("expected range error beyond series end")
	}
	// Exactly on the boundary is in range.
	if _, err := src.IrradianceWM2(10); err != nil {
		t.Errorf("boundary query should succeed: %v", err)
	}
}
