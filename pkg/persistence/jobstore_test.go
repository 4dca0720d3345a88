package persistence

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *JobStore {
	t.Helper()
	return NewJobStore(filepath.Join(t.TempDir(), "jobs.json"))
}

func TestJobStorePutGet(t *testing.T) {
	store := testStore(t)

	rec := JobRecord{
		JobID:       "job-1234",
		Backend:     "ibmqx4",
		QASM:        "OPENQASM 2.0;\n",
		Shots:       1024,
		Counts:      map[string]int{"00": 600, "11": 424},
		SubmittedAt: time.Now().Add(-time.Minute),
		CompletedAt: time.Now(),
	}
	if err := store.Put(rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get("job-1234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.JobID != rec.JobID || got.Backend != rec.Backend || got.Shots != rec.Shots {
		t.Errorf("Get = %+v, want %+v", got, rec)
	}
	if got.Counts["00"] != 600 || got.Counts["11"] != 424 {
		t.Errorf("Counts = %v", got.Counts)
	}
}

func TestJobStoreGetMissing(t *testing.T) {
	store := testStore(t)

	t.Run("empty store", func(t *testing.T) {
		_, err := store.Get("nope")
		if !errors.Is(err, ErrJobNotFound) {
			t.Errorf("Get error = %v, want ErrJobNotFound", err)
		}
	})

	t.Run("populated store", func(t *testing.T) {
		if err := store.Put(JobRecord{JobID: "a"}); err != nil {
			t.Fatal(err)
		}
		_, err := store.Get("b")
		if !errors.Is(err, ErrJobNotFound) {
			t.Errorf("Get error = %v, want ErrJobNotFound", err)
		}
	})
}

func TestJobStoreReplace(t *testing.T) {
	store := testStore(t)

	if err := store.Put(JobRecord{JobID: "a", Shots: 10}); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(JobRecord{JobID: "a", Shots: 20}); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Shots != 20 {
		t.Errorf("Shots = %d, want 20", got.Shots)
	}

	jobs, err := store.Jobs()
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Errorf("Jobs() has %d records, want 1", len(jobs))
	}
}

func TestJobStoreEmpty(t *testing.T) {
	store := testStore(t)
	jobs, err := store.Jobs()
	if err != nil {
		t.Fatalf("Jobs on missing file: %v", err)
	}
	if jobs != nil {
		t.Errorf("Jobs() = %v, want nil", jobs)
	}
}

func TestJobStoreFileFormat(t *testing.T) {
	store := testStore(t)
	if err := store.Put(JobRecord{JobID: "a"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	var file struct {
		Version int             `json:"version"`
		SavedAt time.Time       `json:"saved_at"`
		Jobs    json.RawMessage `json:"jobs"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		t.Fatalf("store file is not valid JSON: %v", err)
	}
	if file.Version != StoreVersion {
		t.Errorf("version = %d, want %d", file.Version, StoreVersion)
	}
	if file.SavedAt.IsZero() {
		t.Error("saved_at is zero")
	}
}

func TestJobStoreCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	store := NewJobStore(filepath.Join(dir, "nested", "deeper", "jobs.json"))
	if err := store.Put(JobRecord{JobID: "a"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Errorf("store file not created: %v", err)
	}
}

func TestJobStoreCorruptFile(t *testing.T) {
	store := testStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get("a"); err == nil {
		t.Error("expected error on corrupt store file")
	}
}
