package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StoreVersion is the current version of the job store file format.
const StoreVersion = 1

// ErrJobNotFound is returned when a job ID has no stored record.
var ErrJobNotFound = errors.New("job not found in store")

// JobRecord is one completed hardware job.
type JobRecord struct {
	// JobID is the service-assigned job identifier.
	JobID string `json:"job_id"`

	// Backend is the hardware backend the job ran on.
	Backend string `json:"backend"`

	// QASM is the submitted program.
	QASM string `json:"qasm"`

	// Shots requested for the job.
	Shots int `json:"shots"`

	// Counts is the measured bitstring histogram.
	Counts map[string]int `json:"counts"`

	// SubmittedAt is when the job was submitted.
	SubmittedAt time.Time `json:"submitted_at"`

	// CompletedAt is when the result was retrieved.
	CompletedAt time.Time `json:"completed_at"`
}

// storeFile is the on-disk layout.
type storeFile struct {
	// Version is the store file format version.
	Version int `json:"version"`

	// SavedAt is when the store was last written.
	SavedAt time.Time `json:"saved_at"`

	// Jobs indexed by job ID.
	Jobs map[string]JobRecord `json:"jobs,omitempty"`
}

// JobStore manages persistence of job records to a JSON file.
type JobStore struct {
	mu   sync.Mutex
	path string
}

// NewJobStore creates a job store backed by the file at path.
func NewJobStore(path string) *JobStore {
	return &JobStore{path: path}
}

// Path returns the store file path.
func (s *JobStore) Path() string { return s.path }

// Put records a completed job, replacing any record with the same ID.
func (s *JobStore) Put(rec JobRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.loadLocked()
	if err != nil {
		return err
	}
	if file == nil {
		file = &storeFile{Jobs: make(map[string]JobRecord)}
	}
	if file.Jobs == nil {
		file.Jobs = make(map[string]JobRecord)
	}
	file.Jobs[rec.JobID] = rec

	return s.saveLocked(file)
}

// Get returns the record for a job ID.
func (s *JobStore) Get(jobID string) (JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.loadLocked()
	if err != nil {
		return JobRecord{}, err
	}
	if file == nil {
		return JobRecord{}, fmt.Errorf("%w: %q", ErrJobNotFound, jobID)
	}
	rec, ok := file.Jobs[jobID]
	if !ok {
		return JobRecord{}, fmt.Errorf("%w: %q", ErrJobNotFound, jobID)
	}
	return rec, nil
}

// Jobs returns all stored records.
func (s *JobStore) Jobs() ([]JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}

	recs := make([]JobRecord, 0, len(file.Jobs))
	for _, rec := range file.Jobs {
		recs = append(recs, rec)
	}
	return recs, nil
}

// loadLocked reads the store file. Returns nil, nil if the file doesn't
// exist (empty store). Callers hold s.mu.
func (s *JobStore) loadLocked() (*storeFile, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing job store %s: %w", s.path, err)
	}
	return &file, nil
}

// saveLocked writes the store file. Callers hold s.mu.
func (s *JobStore) saveLocked(file *storeFile) error {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file.Version = StoreVersion
	file.SavedAt = time.Now()

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
