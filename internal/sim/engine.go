// Package sim orchestrates the solar loop simulation: it samples
// weather, lets the pump controller decide once per step, and advances
// the single tank temperature with a fixed-step integrator.
//
// The run is one synchronous, deterministic loop. No I/O happens
// inside it; identical inputs produce bit-identical results.
package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/heliosim/internal/control"
	"github.com/san-kum/heliosim/internal/integrators"
	"github.com/san-kum/heliosim/internal/params"
	"github.com/san-kum/heliosim/internal/physics"
	"github.com/san-kum/heliosim/internal/weather"
)

// stepRatioTol absorbs float representation noise in duration/dt.
// A genuine non-multiple still fails the exact-multiple check.
const stepRatioTol = 1e-9

// Engine runs one simulation per Run call and keeps no state across
// calls.
type Engine struct {
	bundle  params.Bundle
	source  weather.Source
	stepper integrators.Stepper
}

// New wires a validated parameter bundle, a weather source and a
// stepper into a runnable engine.
func New(bundle params.Bundle, source weather.Source, stepper integrators.Stepper) *Engine {
	return &Engine{bundle: bundle, source: source, stepper: stepper}
}

// Steps returns the number of integration steps for a timeline, or an
// error when the duration is not an exact integer multiple of dt.
// Silent rounding would silently shorten or lengthen the requested
// horizon, so this is a hard configuration error.
func Steps(s params.Simulation) (int, error) {
	ratio := s.DurationS / s.DtS
	n := math.Round(ratio)
	if math.Abs(ratio-n) > stepRatioTol*math.Max(1, math.Abs(ratio)) {
		return 0, fmt.Errorf("simulation.duration_s (%v) must be an exact multiple of simulation.dt_s (%v)",
			s.DurationS, s.DtS)
	}
	return int(n), nil
}

// Run executes the transient simulation and returns the trajectory
// with exactly steps+1 samples.
func (e *Engine) Run() (*Result, error) {
	if err := e.bundle.Validate(); err != nil {
		return nil, err
	}
	nSteps, err := Steps(e.bundle.Simulation)
	if err != nil {
		return nil, err
	}

	var (
		t0    = e.bundle.Simulation.T0S
		dt    = e.bundle.Simulation.DtS
		tank  = e.bundle.Tank
		pump  = e.bundle.Pump
		tTank = tank.InitialTemperatureK
	)

	ctl := control.NewPumpController(e.bundle.Collector, pump, tank, e.bundle.Control)
	result := newResult(nSteps + 1)

	for i := 0; i <= nSteps; i++ {
		// Indexed timestamps keep the last sample at exactly t0+duration.
		t := t0 + float64(i)*dt

		g, err := e.source.IrradianceWM2(t)
		if err != nil {
			return nil, fmt.Errorf("sampling irradiance at t=%v: %w", t, err)
		}
		tAmb, err := e.source.AmbientTemperatureK(t)
		if err != nil {
			return nil, fmt.Errorf("sampling ambient temperature at t=%v: %w", t, err)
		}

		pumpOn := ctl.Update(tTank, tAmb, g)
		result.append(t, tTank, tAmb, g, pumpOn)

		if i == nSteps {
			break
		}

		tTank, err = e.advance(t, tTank, dt, pumpOn)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// advance integrates the tank temperature over one step. The pump
// state is frozen for the whole step, including every sub-stage the
// stepper evaluates; weather still varies with sub-stage time.
func (e *Engine) advance(t, tTank, dt float64, pumpOn bool) (float64, error) {
	mDot := 0.0
	if pumpOn {
		mDot = e.bundle.Pump.MassFlowKgS
	}
	tank := e.bundle.Tank

	var rhsErr error
	rhs := func(lt, ly float64) float64 {
		g, err := e.source.IrradianceWM2(lt)
		if err != nil {
			if rhsErr == nil {
				rhsErr = fmt.Errorf("sampling irradiance at t=%v: %w", lt, err)
			}
			return 0
		}
		tAmb, err := e.source.AmbientTemperatureK(lt)
		if err != nil {
			if rhsErr == nil {
				rhsErr = fmt.Errorf("sampling ambient temperature at t=%v: %w", lt, err)
			}
			return 0
		}

		qU := physics.CollectorUsefulHeatW(ly, tAmb, g, e.bundle.Collector)
		tOut := physics.CollectorOutletK(ly, qU, mDot, tank.CpJKgK)
		return physics.TankDerivativeKS(ly, tOut, tank.RoomTemperatureK, mDot, tank)
	}

	next := e.stepper.Step(t, tTank, dt, rhs)
	if rhsErr != nil {
		return 0, rhsErr
	}
	return next, nil
}
