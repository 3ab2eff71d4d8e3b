package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreRecordCompletion(t *testing.T) {
	store := openTest(t)

	tests := []struct {
		steps    int
		improved bool
		best     int
	}{
		{12, true, 12},
		{15, false, 12},
		{12, false, 12},
		{9, true, 9},
	}

	for i, tc := range tests {
		improved, err := store.RecordCompletion("local", "Push", tc.steps)
		if err != nil {
			t.Fatalf("RecordCompletion() #%d failed: %v", i, err)
		}
		if improved != tc.improved {
			t.Errorf("RecordCompletion(%d) improved = %v, expected %v", tc.steps, improved, tc.improved)
		}
		best, ok, err := store.BestSteps("local", "Push")
		if err != nil || !ok {
			t.Fatalf("BestSteps() = %d, %v, %v", best, ok, err)
		}
		if best != tc.best {
			t.Errorf("after %d steps best = %d, expected %d", tc.steps, best, tc.best)
		}
	}
}

func TestStoreBestStepsMissing(t *testing.T) {
	store := openTest(t)

	if _, ok, err := store.BestSteps("local", "Nope"); err != nil || ok {
		t.Errorf("BestSteps() of an unplayed level = %v, %v", ok, err)
	}
}

func TestStoreProfilesAreSeparate(t *testing.T) {
	store := openTest(t)

	store.RecordCompletion("alice", "Push", 4)
	store.RecordCompletion("alice", "Colors", 6)
	store.RecordCompletion("bob", "Push", 10)

	done, err := store.Completions("alice")
	if err != nil {
		t.Fatalf("Completions() failed: %v", err)
	}
	if len(done) != 2 || done["Push"] != 4 || done["Colors"] != 6 {
		t.Errorf("Completions(alice) = %v", done)
	}

	total, err := store.TotalSteps("alice")
	if err != nil || total != 10 {
		t.Errorf("TotalSteps(alice) = %d, %v, expected 10", total, err)
	}
	if total, _ := store.TotalSteps("carol"); total != 0 {
		t.Errorf("TotalSteps of an empty profile = %d", total)
	}
}

func TestStoreRunsAndStats(t *testing.T) {
	store := openTest(t)

	for _, steps := range []int{8, 5, 7} {
		store.RecordCompletion("local", "Push", steps)
	}
	store.RecordCompletion("local", "Colors", 3)

	runs, err := store.RecentRuns("local", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("Expected 4 runs, got %d", len(runs))
	}
	if runs[0].LevelName != "Colors" {
		t.Errorf("newest run = %q, expected Colors", runs[0].LevelName)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("run timestamp was not parsed")
	}

	limited, _ := store.RecentRuns("local", 2)
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}

	stats, err := store.Stats("local")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	push := stats["Push"]
	if push == nil || push.Clears != 3 || push.BestSteps != 5 {
		t.Errorf("Stats()[Push] = %+v", push)
	}
}

func TestStoreReset(t *testing.T) {
	store := openTest(t)

	store.RecordCompletion("alice", "Push", 4)
	store.RecordCompletion("bob", "Push", 5)

	if err := store.Reset("alice"); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	if done, _ := store.Completions("alice"); len(done) != 0 {
		t.Errorf("Expected no completions after reset, got %v", done)
	}
	if runs, _ := store.RecentRuns("alice", 10); len(runs) != 0 {
		t.Errorf("Expected no runs after reset, got %d", len(runs))
	}
	if done, _ := store.Completions("bob"); len(done) != 1 {
		t.Error("Bob's progress should not be affected by resetting alice")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
