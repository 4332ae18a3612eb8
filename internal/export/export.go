// Package export writes finished trajectories to CSV and JSON, and
// renders a standalone SVG plot of the tank temperature.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/heliosim/internal/sim"
)

// CSV column order. The time column matches the weather input format so
// an exported run can be fed back in as a series.
var csvHeader = []string{
	"time_s",
	"tank_temperature_k",
	"ambient_temperature_k",
	"irradiance_w_m2",
	"pump_on",
}

// Data is the JSON export shape: run settings, the full trajectory and
// the summary metrics in one document.
type Data struct {
	Solver              string             `json:"solver"`
	DtS                 float64            `json:"dt_s"`
	DurationS           float64            `json:"duration_s"`
	Steps               int                `json:"steps"`
	TimesS              []float64          `json:"times_s"`
	TankTemperatureK    []float64          `json:"tank_temperature_k"`
	AmbientTemperatureK []float64          `json:"ambient_temperature_k"`
	IrradianceWM2       []float64          `json:"irradiance_w_m2"`
	PumpOn              []bool             `json:"pump_on"`
	Metrics             map[string]float64 `json:"metrics"`
}

func checkResult(result *sim.Result) error {
	if result == nil {
		return fmt.Errorf("nil result")
	}
	n := len(result.TimesS)
	if len(result.TankTemperatureK) != n || len(result.AmbientTemperatureK) != n ||
		len(result.IrradianceWM2) != n || len(result.PumpOn) != n {
		return fmt.Errorf("result series lengths diverge")
	}
	return nil
}

// WriteCSV streams the trajectory as CSV rows. Pump state is written as
// 0 or 1 so the file round-trips through numeric tooling.
func WriteCSV(w io.Writer, result *sim.Result) error {
	if err := checkResult(result); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for i := range result.TimesS {
		pump := "0"
		if result.PumpOn[i] {
			pump = "1"
		}
		row := []string{
			strconv.FormatFloat(result.TimesS[i], 'g', -1, 64),
			strconv.FormatFloat(result.TankTemperatureK[i], 'g', -1, 64),
			strconv.FormatFloat(result.AmbientTemperatureK[i], 'g', -1, 64),
			strconv.FormatFloat(result.IrradianceWM2[i], 'g', -1, 64),
			pump,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSVToFile writes the trajectory CSV at path.
func CSVToFile(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, result)
}

// WriteJSON writes the indented JSON document.
func WriteJSON(w io.Writer, solver string, dt, duration float64, result *sim.Result, metrics map[string]float64) error {
	if err := checkResult(result); err != nil {
		return err
	}

	data := Data{
		Solver:              solver,
		DtS:                 dt,
		DurationS:           duration,
		Steps:               result.Len(),
		TimesS:              result.TimesS,
		TankTemperatureK:    result.TankTemperatureK,
		AmbientTemperatureK: result.AmbientTemperatureK,
		IrradianceWM2:       result.IrradianceWM2,
		PumpOn:              result.PumpOn,
		Metrics:             metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// JSONToFile writes the JSON document at path.
func JSONToFile(path, solver string, dt, duration float64, result *sim.Result, metrics map[string]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, solver, dt, duration, result, metrics)
}
