package integrators

import (
	"math"
	"testing"
)

func benchRHS(t, y float64) float64 {
	return math.Sin(t) - 0.05*y
}

func BenchmarkEuler(b *testing.B) {
	stepper := NewEuler()
	y := 1.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y = stepper.Step(0, y, 0.01, benchRHS)
	}
}

func BenchmarkRK4(b *testing.B) {
	stepper := NewRK4()
	y := 1.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y = stepper.Step(0, y, 0.01, benchRHS)
	}
}
