// Package store persists completed runs: per-run directories holding
// run metadata and the named solution series, plus JSON/CSV export of
// a model's most recent solution.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/modeldrop/internal/dynamo"
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
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Time       float64            `json:"time"`
	Dt         float64            `json:"dt"`
	Integrator string             `json:"integrator"`
	Params     map[string]float64 `json:"params"`
}

// Save writes the model's solution into a new run directory and
// returns the run id. The model must have completed a run.
func (s *Store) Save(m dynamo.Model, integrator string) (string, error) {
	b := m.Core()
	if len(b.Times) == 0 {
		return "", fmt.Errorf("store: model %s has no solution to save", b.Name)
	}

	if err := s.Init(); err != nil {
		return "", err
	}

	// Mkdir, not MkdirAll: an existing directory must count as a
	// collision, so back-to-back saves of the same model get distinct
	// ids instead of overwriting each other.
	stamp := time.Now().UnixNano()
	runID := fmt.Sprintf("%s_%d", b.Name, stamp)
	runDir := filepath.Join(s.baseDir, runID)
	for n := 1; ; n++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d_%d", b.Name, stamp, n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	params := make(map[string]float64, b.Param.Len())
	for _, key := range b.Param.Keys() {
		params[key] = b.Param.At(key)
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      b.Name,
		Timestamp:  time.Now(),
		Time:       b.Param.At("time"),
		Dt:         b.Param.At("dt"),
		Integrator: integrator,
		Params:     params,
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

	csvFile, err := os.Create(filepath.Join(runDir, "solution.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeSolutionCSV(csvFile, b); err != nil {
		return "", err
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSolution reads a saved run back as times plus named series, in
// the column order they were saved in.
func (s *Store) LoadSolution(runID string) ([]float64, *dynamo.Timeseries, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "solution.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("store: run %s has an empty solution", runID)
	}

	header := records[0]
	if len(header) == 0 || header[0] != "time" {
		return nil, nil, fmt.Errorf("store: run %s has a malformed solution header", runID)
	}

	times := make([]float64, 0, len(records)-1)
	sol := dynamo.NewTimeseries()
	for _, record := range records[1:] {
		if len(record) != len(header) {
			return nil, nil, fmt.Errorf("store: run %s has a ragged solution row", runID)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)

		for i := 1; i < len(record); i++ {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, nil, err
			}
			sol.Append(header[i], v)
		}
	}

	return times, sol, nil
}

func writeSolutionCSV(f *os.File, b *dynamo.Base) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	keys := b.Solution.Keys()
	header := append([]string{"time"}, keys...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range b.Times {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
		for _, key := range keys {
			row = append(row, strconv.FormatFloat(b.Solution.Series(key)[i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
