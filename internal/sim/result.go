package sim

// Result holds the full trajectory of a run as five parallel series of
// identical length: one sample per step boundary, the first at t0 and
// the last at t0 + duration.
type Result struct {
	TimesS              []float64
	TankTemperatureK    []float64
	AmbientTemperatureK []float64
	IrradianceWM2       []float64
	PumpOn              []bool
}

func newResult(capacity int) *Result {
	return &Result{
		TimesS:              make([]float64, 0, capacity),
		TankTemperatureK:    make([]float64, 0, capacity),
		AmbientTemperatureK: make([]float64, 0, capacity),
		IrradianceWM2:       make([]float64, 0, capacity),
		PumpOn:              make([]bool, 0, capacity),
	}
}

func (r *Result) append(t, tank, ambient, irradiance float64, pumpOn bool) {
	r.TimesS = append(r.TimesS, t)
	r.TankTemperatureK = append(r.TankTemperatureK, tank)
	r.AmbientTemperatureK = append(r.AmbientTemperatureK, ambient)
	r.IrradianceWM2 = append(r.IrradianceWM2, irradiance)
	r.PumpOn = append(r.PumpOn, pumpOn)
}

// Len returns the number of samples.
func (r *Result) Len() int { return len(r.TimesS) }
