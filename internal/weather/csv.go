package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/heliosim/internal/timeseries"
)

// Default column names of the weather CSV format.
const (
	DefaultTimeColumn       = "time_s"
	DefaultIrradianceColumn = "irradiance_w_m2"
	DefaultAmbientColumn    = "ambient_k"
)

// CSVConfig parameterizes a CSV-backed weather source.
type CSVConfig struct {
	Path             string
	TimeColumn       string
	IrradianceColumn string
	AmbientColumn    string
	Extrapolation    timeseries.Extrapolation
}

func (c CSVConfig) withDefaults() CSVConfig {
	if c.TimeColumn == "" {
		c.TimeColumn = DefaultTimeColumn
	}
	if c.IrradianceColumn == "" {
		c.IrradianceColumn = DefaultIrradianceColumn
	}
	if c.AmbientColumn == "" {
		c.AmbientColumn = DefaultAmbientColumn
	}
	return c
}

// CSVSource interpolates irradiance and ambient temperature series
// loaded from tabular data. Out-of-range queries follow the configured
// extrapolation mode.
type CSVSource struct {
	irradiance *timeseries.Series
	ambient    *timeseries.Series
	mode       timeseries.Extrapolation
}

func (s *CSVSource) IrradianceWM2(t float64) (float64, error) {
	return s.irradiance.ValueAt(t, s.mode)
}

func (s *CSVSource) AmbientTemperatureK(t float64) (float64, error) {
	return s.ambient.ValueAt(t, s.mode)
}

// LoadCSV reads the configured file and builds the interpolated source.
// Parsing happens once, before the simulation loop; the result is an
// immutable in-memory sampler.
func LoadCSV(cfg CSVConfig) (*CSVSource, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open weather csv: %w", err)
	}
	defer f.Close()

	src, err := ReadCSV(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Path, err)
	}
	return src, nil
}

// ReadCSV parses weather columns from r according to cfg.
func ReadCSV(r io.Reader, cfg CSVConfig) (*CSVSource, error) {
	cfg = cfg.withDefaults()

	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 3 {
		return nil, fmt.Errorf("weather csv must have a header and at least 2 data rows, got %d rows", len(records))
	}

	header := records[0]
	col := func(name string) (int, error) {
		for i, h := range header {
			if h == name {
				return i, nil
			}
		}
		return 0, fmt.Errorf("missing column %q in weather csv", name)
	}

	timeIdx, err := col(cfg.TimeColumn)
	if err != nil {
		return nil, err
	}
	irrIdx, err := col(cfg.IrradianceColumn)
	if err != nil {
		return nil, err
	}
	ambIdx, err := col(cfg.AmbientColumn)
	if err != nil {
		return nil, err
	}

	n := len(records) - 1
	times := make([]float64, 0, n)
	irr := make([]float64, 0, n)
	amb := make([]float64, 0, n)

	parse := func(row []string, idx int, name string, rowNum int) (float64, error) {
		if idx >= len(row) {
			return 0, fmt.Errorf("row %d is missing column %q", rowNum, name)
		}
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid numeric value %q for column %q at row %d", row[idx], name, rowNum)
		}
		return v, nil
	}

	for i, row := range records[1:] {
		rowNum := i + 1
		t, err := parse(row, timeIdx, cfg.TimeColumn, rowNum)
		if err != nil {
			return nil, err
		}
		g, err := parse(row, irrIdx, cfg.IrradianceColumn, rowNum)
		if err != nil {
			return nil, err
		}
		a, err := parse(row, ambIdx, cfg.AmbientColumn, rowNum)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
		irr = append(irr, g)
		amb = append(amb, a)
	}

	irrSeries, err := timeseries.New(times, irr)
	if err != nil {
		return nil, fmt.Errorf("irradiance series: %w", err)
	}
	ambSeries, err := timeseries.New(times, amb)
	if err != nil {
		return nil, fmt.Errorf("ambient series: %w", err)
	}

	return &CSVSource{irradiance: irrSeries, ambient: ambSeries, mode: cfg.Extrapolation}, nil
}
