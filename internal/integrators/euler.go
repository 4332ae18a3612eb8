package integrators

// Euler is the forward Euler stepper: cheap, first order, exact only
// for a constant derivative.
type Euler struct{}

func NewEuler() Euler { return Euler{} }

func (Euler) Name() string { return "euler" }

func (Euler) Step(t, y, dt float64, f RHS) float64 {
	return y + dt*f(t, y)
}
