package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Collector.AreaM2 != 2.0 {
		t.Errorf("collector area default: expected 2, got %v", cfg.Collector.AreaM2)
	}
	if cfg.Tank.MassKg != 200 {
		t.Errorf("tank mass default: expected 200, got %v", cfg.Tank.MassKg)
	}
	if cfg.Weather.Kind != KindSynthetic {
		t.Errorf("weather kind default: expected synthetic, got %q", cfg.Weather.Kind)
	}
	// Derived ambient peak: 0.625 of a 24 h period.
	if cfg.Weather.AmbientPeakS != 0.625*86400 {
		t.Errorf("ambient peak default: expected 54000, got %v", cfg.Weather.AmbientPeakS)
	}
	if err := cfg.Bundle().Validate(); err != nil {
		t.Errorf("default bundle must validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "sim.toml", `
[collector]
area_m2 = 4.0

[tank]
mass_kg = 150.0

[simulation]
dt_s = 5.0
duration_s = 3600.0

[weather]
kind = "synthetic"
peak_irradiance_w_m2 = 900.0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Collector.AreaM2 != 4 {
		t.Errorf("expected overridden area 4, got %v", cfg.Collector.AreaM2)
	}
	if cfg.Tank.MassKg != 150 {
		t.Errorf("expected overridden mass 150, got %v", cfg.Tank.MassKg)
	}
	// Untouched fields keep their defaults.
	if cfg.Tank.CpJKgK != 4180 {
		t.Errorf("expected default cp 4180, got %v", cfg.Tank.CpJKgK)
	}
	if cfg.Weather.PeakIrradianceWM2 != 900 {
		t.Errorf("expected peak 900, got %v", cfg.Weather.PeakIrradianceWM2)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "sim.yaml", `
pump:
  mass_flow_kg_s: 0.08
control:
  enabled: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pump.MassFlowKgS != 0.08 {
		t.Errorf("expected flow 0.08, got %v", cfg.Pump.MassFlowKgS)
	}
	if cfg.Control.Enabled {
		t.Error("expected control disabled")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "sim.ini", "[tank]\nmass_kg = 1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HELIOSIM_TANK__MASS_KG", "42")
	t.Setenv("HELIOSIM_CONTROL__DELTA_T_ON_K", "3.5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Tank.MassKg != 42 {
		t.Errorf("expected env-overridden mass 42, got %v", cfg.Tank.MassKg)
	}
	if cfg.Control.DeltaTOnK != 3.5 {
		t.Errorf("expected env-overridden threshold 3.5, got %v", cfg.Control.DeltaTOnK)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	path := writeFile(t, "bad.toml", `
[tank]
mass_kg = -5.0
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "tank.mass_kg") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestDeadbandOrderingRejected(t *testing.T) {
	path := writeFile(t, "bad.toml", `
[control]
delta_t_on_k = 1.0
delta_t_off_k = 2.0
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected deadband ordering error")
	}
}

func TestExplicitAmbientPeakKept(t *testing.T) {
	path := writeFile(t, "sim.toml", `
[weather]
ambient_peak_s = 50000.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Weather.AmbientPeakS != 50000 {
		t.Errorf("expected explicit peak 50000, got %v", cfg.Weather.AmbientPeakS)
	}
}

func TestCSVWeatherResolvedRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "weather.csv")
	if err := os.WriteFile(csvPath, []byte("time_s,irradiance_w_m2,ambient_k\n0,0,290\n3600,500,293\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	cfgPath := filepath.Join(dir, "sim.toml")
	if err := os.WriteFile(cfgPath, []byte(`
[weather]
kind = "csv"
csv_path = "weather.csv"
extrapolation = "clamp"
`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	src, err := cfg.BuildWeather()
	if err != nil {
		t.Fatalf("BuildWeather failed: %v", err)
	}
	g, err := src.IrradianceWM2(1800)
	if err != nil {
		t.Fatalf("sampling failed: %v", err)
	}
	if g != 250 {
		t.Errorf("expected interpolated 250, got %v", g)
	}
}

func TestCSVWeatherRequiresPath(t *testing.T) {
	path := writeFile(t, "sim.toml", `
[weather]
kind = "csv"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing csv_path")
	}
}

func TestUnknownWeatherKind(t *testing.T) {
	path := writeFile(t, "sim.toml", `
[weather]
kind = "tmy3"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown weather kind")
	}
}

func TestBuildSyntheticWeather(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	src, err := cfg.BuildWeather()
	if err != nil {
		t.Fatalf("BuildWeather failed: %v", err)
	}
	g, err := src.IrradianceWM2(43200)
	if err != nil {
		t.Fatalf("sampling failed: %v", err)
	}
	if g != 850 {
		t.Errorf("expected peak 850 at noon, got %v", g)
	}
}
