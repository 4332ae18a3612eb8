package integrators

// RK4 is the classic four-stage 4th-order Runge-Kutta stepper. It is
// exact (up to rounding) for right-hand sides that are constant or
// linear in t.
type RK4 struct{}

func NewRK4() RK4 { return RK4{} }

func (RK4) Name() string { return "rk4" }

func (RK4) Step(t, y, dt float64, f RHS) float64 {
	k1 := f(t, y)
	k2 := f(t+dt/2, y+dt*k1/2)
	k3 := f(t+dt/2, y+dt*k2/2)
	k4 := f(t+dt, y+dt*k3)
	return y + dt/6*(k1+2*k2+2*k3+k4)
}
