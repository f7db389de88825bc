package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/thermo"
)

const (
	metadataFile = "metadata.json"
	resultsFile  = "results.txt"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID                   string             `json:"id"`
	Timestamp            time.Time          `json:"timestamp"`
	Rows                 int                `json:"rows"`
	Columns              int                `json:"columns"`
	Temperatures         []float64          `json:"temperatures"`
	Coupling             float64            `json:"coupling"`
	Field                float64            `json:"field"`
	ThermalizationSweeps int                `json:"thermalization_sweeps"`
	MeasurementSweeps    int                `json:"measurement_sweeps"`
	MeasureEvery         int                `json:"measure_every"`
	StructureFactor      bool               `json:"structure_factor"`
	Seed                 uint64             `json:"seed"`
	RNG                  string             `json:"rng"`
	ElapsedSeconds       float64            `json:"elapsed_seconds"`
	Metrics              map[string]float64 `json:"metrics"`
}

// Save writes a new run directory holding metadata.json and results.txt and
// returns its id.
func (s *Store) Save(rows, columns int, p experiment.Params[float64], results []experiment.Results[float64], elapsed time.Duration) (string, error) {
	if len(p.Temperatures) != len(results) {
		return "", fmt.Errorf("%w: %d temperatures, %d results", ErrLengthMismatch, len(p.Temperatures), len(results))
	}

	runID := fmt.Sprintf("%dx%d-%s", rows, columns, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	obs := thermo.DeriveAll(results, rows, columns)
	meta := RunMetadata{
		ID:                   runID,
		Timestamp:            time.Now(),
		Rows:                 rows,
		Columns:              columns,
		Temperatures:         p.Temperatures,
		Coupling:             p.Coupling,
		Field:                p.Field,
		ThermalizationSweeps: p.ThermalizationSweeps,
		MeasurementSweeps:    p.MeasurementSweeps,
		MeasureEvery:         p.MeasureEvery,
		StructureFactor:      p.StructureFactor,
		Seed:                 p.Seed,
		RNG:                  string(p.RNG),
		ElapsedSeconds:       elapsed.Seconds(),
		Metrics:              summarize(obs),
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	resFile, err := os.Create(filepath.Join(runDir, resultsFile))
	if err != nil {
		return "", err
	}
	defer resFile.Close()

	if err := WriteTable(resFile, obs, elapsed, p.StructureFactor); err != nil {
		return "", err
	}
	return runID, nil
}

func summarize(obs []thermo.Observables) map[string]float64 {
	metrics := map[string]float64{}
	for _, q := range []thermo.Quantity{thermo.QuantitySpecificHeat, thermo.QuantitySusceptibility} {
		if tc, err := thermo.PeakTemperature(obs, q); err == nil {
			metrics["peak_"+string(q)] = tc
		}
	}
	return metrics
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadResults(runID string) ([]thermo.Observables, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, resultsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obs, _, err := ReadTable(f)
	return obs, err
}
