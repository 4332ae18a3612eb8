// Package params defines the validated parameter sets for the solar loop
// model. All temperatures are Kelvin, all times seconds.
package params

import (
	"fmt"
	"math"
)

func requireFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be finite, got %v", name, v)
	}
	return nil
}

func requirePositive(name string, v float64) error {
	if err := requireFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("%s must be > 0, got %v", name, v)
	}
	return nil
}

func requireNonNegative(name string, v float64) error {
	if err := requireFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%s must be >= 0, got %v", name, v)
	}
	return nil
}

func requireUnitInterval(name string, v float64) error {
	if err := requireFinite(name, v); err != nil {
		return err
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %v", name, v)
	}
	return nil
}

// Collector holds flat-plate collector parameters.
type Collector struct {
	AreaM2              float64 // aperture area [m^2]
	HeatRemovalFactor   float64 // F_R [-]
	OpticalEfficiency   float64 // eta0 [-]
	LossCoefficientWM2K float64 // U_L [W/(m^2*K)]
}

func (c Collector) Validate() error {
	if err := requirePositive("collector.area_m2", c.AreaM2); err != nil {
		return err
	}
	if err := requireUnitInterval("collector.heat_removal_factor", c.HeatRemovalFactor); err != nil {
		return err
	}
	if err := requireUnitInterval("collector.optical_efficiency", c.OpticalEfficiency); err != nil {
		return err
	}
	return requireNonNegative("collector.loss_coefficient_w_m2k", c.LossCoefficientWM2K)
}

// Tank holds storage tank parameters and its initial condition.
type Tank struct {
	MassKg              float64 // fluid mass [kg]
	CpJKgK              float64 // specific heat [J/(kg*K)]
	UAWK                float64 // loss coefficient to the room [W/K]
	InitialTemperatureK float64
	RoomTemperatureK    float64
}

func (t Tank) Validate() error {
	if err := requirePositive("tank.mass_kg", t.MassKg); err != nil {
		return err
	}
	if err := requirePositive("tank.cp_j_kgk", t.CpJKgK); err != nil {
		return err
	}
	if err := requireNonNegative("tank.ua_w_k", t.UAWK); err != nil {
		return err
	}
	if err := requireNonNegative("tank.initial_temperature_k", t.InitialTemperatureK); err != nil {
		return err
	}
	return requireNonNegative("tank.room_temperature_k", t.RoomTemperatureK)
}

// Pump holds circulation loop parameters.
type Pump struct {
	MassFlowKgS float64 // design mass flow when running [kg/s]
}

func (p Pump) Validate() error {
	return requireNonNegative("pump.mass_flow_kg_s", p.MassFlowKgS)
}

// Control holds the hysteresis controller settings. The deadband is
// asymmetric: DeltaTOffK <= DeltaTOnK, so the pump needs a larger
// temperature lift to start than to keep running.
type Control struct {
	Enabled          bool
	DeltaTOnK        float64
	DeltaTOffK       float64
	MinIrradianceWM2 float64
}

func (c Control) Validate() error {
	if err := requireNonNegative("control.delta_t_on_k", c.DeltaTOnK); err != nil {
		return err
	}
	if err := requireNonNegative("control.delta_t_off_k", c.DeltaTOffK); err != nil {
		return err
	}
	if c.DeltaTOffK > c.DeltaTOnK {
		return fmt.Errorf("control.delta_t_off_k must be <= control.delta_t_on_k, got %v > %v",
			c.DeltaTOffK, c.DeltaTOnK)
	}
	return requireNonNegative("control.min_irradiance_w_m2", c.MinIrradianceWM2)
}

// Simulation holds the timeline settings. DurationS must be an exact
// integer multiple of DtS; the engine rejects anything else before the
// loop starts.
type Simulation struct {
	T0S       float64
	DtS       float64
	DurationS float64
}

func (s Simulation) Validate() error {
	if err := requireFinite("simulation.t0_s", s.T0S); err != nil {
		return err
	}
	if err := requirePositive("simulation.dt_s", s.DtS); err != nil {
		return err
	}
	return requireNonNegative("simulation.duration_s", s.DurationS)
}

// Bundle is the frozen parameter set handed to the engine.
type Bundle struct {
	Collector  Collector
	Tank       Tank
	Pump       Pump
	Control    Control
	Simulation Simulation
}

// Validate returns the first violation across all parameter sets.
func (b Bundle) Validate() error {
	if err := b.Collector.Validate(); err != nil {
		return err
	}
	if err := b.Tank.Validate(); err != nil {
		return err
	}
	if err := b.Pump.Validate(); err != nil {
		return err
	}
	if err := b.Control.Validate(); err != nil {
		return err
	}
	return b.Simulation.Validate()
}
