package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupTestStore creates a temporary directory and returns an FSStore for testing.
func setupTestStore(t *testing.T) (*FSStore, string) {
	t.Helper()

	tempDir := t.TempDir()
	store, err := NewFSStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return store, tempDir
}

// createTestRecord creates a run record with test data.
func createTestRecord(runID string) *RunRecord {
	return &RunRecord{
		RunID:          runID,
		ObjectiveNames: []string{"total-deficit", "final-storage"},
		Front: []FrontPoint{
			{Variables: []float64{0.9, 1.0, 8}, Objectives: []float64{1.5, -40}, Constraints: []float64{3, 40, 40}, Feasible: true},
			{Variables: []float64{1.0, 1.0, 10}, Objectives: []float64{0.0, -35}, Constraints: []float64{2.5, 35, 35}, Feasible: true},
		},
		Evaluations:    6000,
		ElapsedSeconds: 1.25,
		Timestamp:      time.Now(),
		Config: RunConfig{
			Scenario:    "test-basin",
			Engine:      "nsga2",
			PopSize:     60,
			Generations: 100,
			Seed:        42,
		},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	store, tempDir := setupTestStore(t)

	record := createTestRecord("run-1")
	if err := store.SaveRun("run-1", record); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	// Result file must exist and no temp file must be left behind.
	resultPath := filepath.Join(tempDir, "runs", "run-1", "result.json")
	if _, err := os.Stat(resultPath); err != nil {
		t.Fatalf("result.json not written: %v", err)
	}
	if _, err := os.Stat(resultPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}

	loaded, err := store.LoadRun("run-1")
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}
	if loaded.RunID != record.RunID {
		t.Errorf("RunID = %q, want %q", loaded.RunID, record.RunID)
	}
	if len(loaded.Front) != 2 {
		t.Fatalf("front size = %d, want 2", len(loaded.Front))
	}
	if loaded.Front[0].Objectives[1] != -40 {
		t.Errorf("objective = %v, want -40", loaded.Front[0].Objectives[1])
	}
	if loaded.Config.Engine != "nsga2" {
		t.Errorf("engine = %q, want nsga2", loaded.Config.Engine)
	}
}

func TestSaveRunValidation(t *testing.T) {
	store, _ := setupTestStore(t)

	if err := store.SaveRun("", createTestRecord("x")); err == nil {
		t.Error("SaveRun accepted empty runID")
	}
	if err := store.SaveRun("run-1", nil); err == nil {
		t.Error("SaveRun accepted nil record")
	}
}

func TestLoadRunNotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.LoadRun("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadRun error = %v, want ErrNotFound", err)
	}
}

func TestListRuns(t *testing.T) {
	store, _ := setupTestStore(t)

	infos, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns on empty store: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("expected empty listing, got %d entries", len(infos))
	}

	for _, id := range []string{"run-a", "run-b"} {
		if err := store.SaveRun(id, createTestRecord(id)); err != nil {
			t.Fatalf("SaveRun(%s): %v", id, err)
		}
	}

	infos, err = store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("len(infos) = %d, want 2", len(infos))
	}
	for _, info := range infos {
		if info.FrontSize != 2 || info.Scenario != "test-basin" {
			t.Errorf("unexpected info: %+v", info)
		}
	}
}

func TestDeleteRun(t *testing.T) {
	store, tempDir := setupTestStore(t)

	if err := store.SaveRun("run-1", createTestRecord("run-1")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := store.DeleteRun("run-1"); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "runs", "run-1")); !os.IsNotExist(err) {
		t.Error("run directory still exists after delete")
	}

	if err := store.DeleteRun("run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteRun error = %v, want ErrNotFound", err)
	}
}

func TestSaveRunOverwrites(t *testing.T) {
	store, _ := setupTestStore(t)

	first := createTestRecord("run-1")
	if err := store.SaveRun("run-1", first); err != nil {
		t.Fatalf("first SaveRun: %v", err)
	}

	second := createTestRecord("run-1")
	second.Front = second.Front[:1]
	if err := store.SaveRun("run-1", second); err != nil {
		t.Fatalf("second SaveRun: %v", err)
	}

	loaded, err := store.LoadRun("run-1")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if len(loaded.Front) != 1 {
		t.Errorf("front size = %d, want 1 after overwrite", len(loaded.Front))
	}
}
