// Package storage persists finished runs on disk. Each run gets its own
// directory with a metadata.json and the trajectory in result.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/heliosim/internal/export"
	"github.com/san-kum/heliosim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0o755)
}

// RunMetadata describes a stored run.
type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Solver      string             `json:"solver"`
	DtS         float64            `json:"dt_s"`
	DurationS   float64            `json:"duration_s"`
	WeatherKind string             `json:"weather_kind"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run directory and returns its ID. IDs combine the
// timestamp with a short random suffix so concurrent saves never clash.
func (s *Store) Save(solver, weatherKind string, dt, duration float64, metrics map[string]float64, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("run_%s_%s", now.Format("20060102T150405"), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   now,
		Solver:      solver,
		DtS:         dt,
		DurationS:   duration,
		WeatherKind: weatherKind,
		Metrics:     metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := export.CSVToFile(filepath.Join(runDir, "result.csv"), result); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns metadata for every stored run, newest first. A missing
// base directory is an empty store, not an error.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadResult reads the trajectory back from result.csv.
func (s *Store) LoadResult(runID string) (*sim.Result, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "result.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("run %s: empty result file", runID)
	}

	result := &sim.Result{}
	for i, row := range records[1:] {
		if len(row) != 5 {
			return nil, fmt.Errorf("run %s: row %d has %d columns, expected 5", runID, i+2, len(row))
		}
		vals := make([]float64, 4)
		for j := 0; j < 4; j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, i+2, err)
			}
			vals[j] = v
		}
		result.TimesS = append(result.TimesS, vals[0])
		result.TankTemperatureK = append(result.TankTemperatureK, vals[1])
		result.AmbientTemperatureK = append(result.AmbientTemperatureK, vals[2])
		result.IrradianceWM2 = append(result.IrradianceWM2, vals[3])
		result.PumpOn = append(result.PumpOn, row[4] == "1")
	}
	return result, nil
}
