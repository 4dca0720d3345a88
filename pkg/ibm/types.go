package ibm

import (
	"time"
)

// DefaultBaseURL is the hosted quantum service endpoint.
const DefaultBaseURL = "https://quantumexperience.ng.bluemix.net/api"

// HostedSimulatorBackend is the backend used when hardware is not
// requested.
const HostedSimulatorBackend = "ibmq_qasm_simulator"

// DefaultShots is the hardware shot count when none is given.
const DefaultShots = 1024

// Credentials authenticate against the hosted quantum service.
type Credentials struct {
	User     string
	Password string
}

// JobStatus is the service-side job state.
type JobStatus string

const (
	// StatusQueued means the job is waiting for the backend.
	StatusQueued JobStatus = "QUEUED"
	// StatusRunning means the job is executing.
	StatusRunning JobStatus = "RUNNING"
	// StatusCompleted means results are available.
	StatusCompleted JobStatus = "COMPLETED"
	// StatusError means the job failed service-side.
	StatusError JobStatus = "ERROR"
)

// Terminal reports whether the status is final.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Job is a submitted program and, once completed, its result histogram.
type Job struct {
	// ID is the service-assigned job identifier.
	ID string `json:"id"`

	// Ref is the client-generated request reference (UUID).
	Ref string `json:"ref,omitempty"`

	// Backend the job runs on.
	Backend string `json:"backend"`

	// QASM is the submitted program.
	QASM string `json:"qasm"`

	// Shots requested.
	Shots int `json:"shots"`

	// Status is the current job state.
	Status JobStatus `json:"status"`

	// Counts is the measured bitstring histogram, present once
	// completed. Keys read left to right as wires 0..n-1.
	Counts map[string]int `json:"counts,omitempty"`

	// Error carries the service-side failure message for StatusError.
	Error string `json:"error,omitempty"`

	// SubmittedAt is when the service accepted the job.
	SubmittedAt time.Time `json:"submitted_at,omitempty"`
}

// Probabilities normalizes the counts histogram. Returns nil when no
// counts are present.
func (j *Job) Probabilities() map[string]float64 {
	if len(j.Counts) == 0 {
		return nil
	}
	total := 0
	for _, n := range j.Counts {
		total += n
	}
	if total == 0 {
		return nil
	}

	probs := make(map[string]float64, len(j.Counts))
	for bits, n := range j.Counts {
		probs[bits] = float64(n) / float64(total)
	}
	return probs
}

// loginRequest is the login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the session token.
type loginResponse struct {
	ID  string `json:"id"`
	TTL int    `json:"ttl"`
}

// submitRequest is the job submission payload.
type submitRequest struct {
	QASM    string      `json:"qasm"`
	Backend backendName `json:"backend"`
	Shots   int         `json:"shots"`
	Ref     string      `json:"ref,omitempty"`
}

// backendName wraps the backend selector the service expects.
type backendName struct {
	Name string `json:"name"`
}

// apiError is the service error envelope.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}
