// Package metrics reduces a finished trajectory to named scalar
// summaries for run listings and API responses.
package metrics

import (
	"math"

	"github.com/san-kum/heliosim/internal/params"
	"github.com/san-kum/heliosim/internal/sim"
)

// Summarize computes the standard summary set for a result. An empty
// result yields an empty map.
func Summarize(result *sim.Result, tank params.Tank) map[string]float64 {
	if result == nil || result.Len() == 0 {
		return map[string]float64{}
	}

	n := result.Len()
	final := result.TankTemperatureK[n-1]
	initial := result.TankTemperatureK[0]

	return map[string]float64{
		"final_tank_k":      final,
		"max_tank_k":        MaxTank(result),
		"tank_rise_k":       final - initial,
		"pump_duty":         PumpDuty(result),
		"pump_switches":     float64(PumpSwitches(result)),
		"stored_energy_j":   tank.MassKg * tank.CpJKgK * (final - initial),
		"mean_irradiance_w": meanSeries(result.IrradianceWM2),
	}
}

// MaxTank returns the highest tank temperature reached.
func MaxTank(result *sim.Result) float64 {
	max := math.Inf(-1)
	for _, v := range result.TankTemperatureK {
		if v > max {
			max = v
		}
	}
	return max
}

// PumpDuty returns the fraction of samples with the pump running.
func PumpDuty(result *sim.Result) float64 {
	if result.Len() == 0 {
		return 0
	}
	on := 0
	for _, v := range result.PumpOn {
		if v {
			on++
		}
	}
	return float64(on) / float64(result.Len())
}

// PumpSwitches counts pump state transitions along the trajectory.
// A chattering controller shows up here immediately.
func PumpSwitches(result *sim.Result) int {
	switches := 0
	for i := 1; i < len(result.PumpOn); i++ {
		if result.PumpOn[i] != result.PumpOn[i-1] {
			switches++
		}
	}
	return switches
}

func meanSeries(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
