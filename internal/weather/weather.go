// Package weather provides the inputs driving the simulation: solar
// irradiance and outdoor ambient temperature as functions of time.
//
// Two interchangeable sources exist: an analytic synthetic model and a
// CSV-backed model interpolating sampled columns. The engine only sees
// the Source interface.
package weather

// Source is the capability the engine samples each step and sub-stage.
type Source interface {
	IrradianceWM2(t float64) (float64, error)
	AmbientTemperatureK(t float64) (float64, error)
}
