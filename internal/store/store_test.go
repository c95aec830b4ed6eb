package store

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/modeldrop/internal/dynamo"
	"github.com/san-kum/modeldrop/internal/models"
)

func runEcology(t *testing.T) *models.Ecology {
	t.Helper()
	m := models.NewEcology()
	m.Param.Set("time", 10)
	if err := dynamo.Run(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	m := runEcology(t)
	runID, err := st.Save(m, "rk45")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(runID, "ecology_") {
		t.Errorf("run id should carry the model name, got %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Model != "ecology" {
		t.Errorf("expected model ecology, got %s", meta.Model)
	}
	if meta.Time != 10 {
		t.Errorf("expected time 10, got %f", meta.Time)
	}
	if meta.Params["initialPrey"] != 10 {
		t.Errorf("expected initialPrey in saved params, got %v", meta.Params)
	}

	times, sol, err := st.LoadSolution(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != len(m.Times) {
		t.Fatalf("expected %d times, got %d", len(m.Times), len(times))
	}
	want := m.Solution.Series("prey")
	got := sol.Series("prey")
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("prey[%d]: saved %v, loaded %v", i, want[i], got[i])
		}
	}
}

func TestSave_BackToBackIDsAreDistinct(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	m := runEcology(t)
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		runID, err := st.Save(m, "rk45")
		if err != nil {
			t.Fatal(err)
		}
		if seen[runID] {
			t.Fatalf("run id %s issued twice", runID)
		}
		seen[runID] = true
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 5 {
		t.Fatalf("expected 5 runs, got %d", len(runs))
	}
}

func TestSaveWithoutSolution(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save(models.NewEcology(), "rk45"); err == nil {
		t.Error("expected error when saving a model that never ran")
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	m := runEcology(t)
	if _, err := st.Save(m, "rk45"); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestList_MissingDir(t *testing.T) {
	st := New("/nonexistent/path/for/test")
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	m := runEcology(t)

	var buf bytes.Buffer
	if err := ExportJSON(&buf, m); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Model != "ecology" {
		t.Errorf("expected ecology, got %s", data.Model)
	}
	if len(data.Series["prey"]) != len(m.Times) {
		t.Errorf("expected %d prey points, got %d", len(m.Times), len(data.Series["prey"]))
	}
	if len(data.Keys) == 0 || data.Keys[0] != "predator" {
		t.Errorf("expected series order to start with predator, got %v", data.Keys)
	}
}

func TestExportCSV(t *testing.T) {
	m := runEcology(t)

	var buf bytes.Buffer
	if err := ExportCSV(&buf, m); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(m.Times)+1 {
		t.Fatalf("expected header + %d rows, got %d lines", len(m.Times), len(lines))
	}
	if !strings.HasPrefix(lines[0], "time,predator,prey") {
		t.Errorf("unexpected header: %s", lines[0])
	}
}
