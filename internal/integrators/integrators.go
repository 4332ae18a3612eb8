// Package integrators provides fixed-step steppers for the scalar tank
// ODE. The stepper is agnostic to the physics it advances; the engine
// hands it a right-hand-side closure per step.
package integrators

import "fmt"

// RHS is the right-hand side of a scalar ODE, dy/dt = f(t, y).
type RHS func(t, y float64) float64

// Stepper advances a scalar state by one fixed step.
type Stepper interface {
	Step(t, y, dt float64, f RHS) float64
	Name() string
}

// ForName returns the stepper registered under name ("rk4" or "euler").
func ForName(name string) (Stepper, error) {
	switch name {
	case "rk4":
		return NewRK4(), nil
	case "euler":
		return NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %q (expected rk4 or euler)", name)
	}
}
