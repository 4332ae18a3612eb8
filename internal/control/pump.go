// Package control implements the discrete pump controller. The
// decision is made once per simulation step from step-start conditions
// and held constant through every integrator sub-stage of that step.
package control

import (
	"github.com/san-kum/heliosim/internal/params"
	"github.com/san-kum/heliosim/internal/physics"
)

// PumpController is the hysteresis state machine for the circulation
// pump. Its only state is whether the pump is currently on.
type PumpController struct {
	collector params.Collector
	pump      params.Pump
	tank      params.Tank
	control   params.Control
	on        bool
}

// NewPumpController returns a controller with the pump off.
func NewPumpController(collector params.Collector, pump params.Pump, tank params.Tank, control params.Control) *PumpController {
	return &PumpController{
		collector: collector,
		pump:      pump,
		tank:      tank,
		control:   control,
	}
}

// On reports the current pump state.
func (c *PumpController) On() bool { return c.on }

// Update re-decides the pump state from step-start conditions and
// returns it. The rule:
//
//  1. control disabled: force on (always-circulating scenarios);
//  2. irradiance below the configured minimum: force off;
//  3. otherwise compare the nominal outlet temperature at design flow
//     against the tank temperature plus a threshold. A running pump
//     stays on above the smaller off-threshold; a stopped pump starts
//     only above the larger on-threshold.
//
// The asymmetric deadband prevents on/off chatter near the crossover.
func (c *PumpController) Update(tTankK, tAmbK, irradianceWM2 float64) bool {
	c.on = c.decide(tTankK, tAmbK, irradianceWM2)
	return c.on
}

func (c *PumpController) decide(tTankK, tAmbK, irradianceWM2 float64) bool {
	if !c.control.Enabled {
		return true
	}
	if irradianceWM2 < c.control.MinIrradianceWM2 {
		return false
	}

	// Nominal collector output assumes circulation at the design flow.
	qUNom := physics.CollectorUsefulHeatW(tTankK, tAmbK, irradianceWM2, c.collector)
	tOutNom := physics.CollectorOutletK(tTankK, qUNom, c.pump.MassFlowKgS, c.tank.CpJKgK)

	if c.on {
		return tOutNom > tTankK+c.control.DeltaTOffK
	}
	return tOutNom > tTankK+c.control.DeltaTOnK
}
