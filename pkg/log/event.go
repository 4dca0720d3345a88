package log

import (
	"time"
)

// Event represents an execution log event emitted by a device.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID identifies one device evaluation (UUID).
	RunID string `cbor:"2,keyasint"`

	// Device is the device short name, e.g. "projectq.simulator".
	Device string `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Wires is the device wire count (populated on state events).
	Wires int `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Gate    *GateEvent      `cbor:"10,keyasint,omitempty"` // gate application
	Measure *MeasureEvent   `cbor:"11,keyasint,omitempty"` // expectation retrieval
	Job     *JobEvent       `cbor:"12,keyasint,omitempty"` // hardware job transition
	State   *StateEvent     `cbor:"13,keyasint,omitempty"` // device lifecycle
	Error   *ErrorEventData `cbor:"14,keyasint,omitempty"` // errors at any stage
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryGate indicates a gate application.
	CategoryGate Category = 0
	// CategoryMeasure indicates an expectation value retrieval.
	CategoryMeasure Category = 1
	// CategoryJob indicates a hardware job transition.
	CategoryJob Category = 2
	// CategoryState indicates a device lifecycle change.
	CategoryState Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryGate:
		return "GATE"
	case CategoryMeasure:
		return "MEASURE"
	case CategoryJob:
		return "JOB"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// GateEvent records one gate application.
type GateEvent struct {
	// Name is the framework-facing gate name.
	Name string `cbor:"1,keyasint"`

	// Wires the gate acted on.
	Wires []int `cbor:"2,keyasint"`

	// Params are the gate parameters, if any.
	Params []float64 `cbor:"3,keyasint,omitempty"`
}

// MeasureEvent records one expectation value retrieval.
type MeasureEvent struct {
	// Observable is the framework-facing observable name.
	Observable string `cbor:"1,keyasint"`

	// Wires the observable was measured on.
	Wires []int `cbor:"2,keyasint"`

	// Value is the returned expectation value.
	Value float64 `cbor:"3,keyasint"`

	// Shots used for the estimate; zero means exact.
	Shots int `cbor:"4,keyasint,omitempty"`
}

// JobEvent records a hardware job transition.
type JobEvent struct {
	// JobID is the service-assigned job identifier.
	JobID string `cbor:"1,keyasint,omitempty"`

	// Backend is the hardware backend name, e.g. "ibmqx4".
	Backend string `cbor:"2,keyasint"`

	// Status is the job status ("submitted", "running", "completed", ...).
	Status string `cbor:"3,keyasint"`

	// Shots requested for the job.
	Shots int `cbor:"4,keyasint,omitempty"`

	// ProgramSize is the submitted program length in bytes.
	ProgramSize int `cbor:"5,keyasint,omitempty"`
}

// StateEvent records a device lifecycle change.
type StateEvent struct {
	// OldState and NewState name the lifecycle states involved.
	OldState string `cbor:"1,keyasint"`
	NewState string `cbor:"2,keyasint"`

	// Reason is an optional human-readable cause.
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData records an error at any stage of execution.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes where the error occurred ("apply", "expval",
	// "submit", ...).
	Context string `cbor:"2,keyasint,omitempty"`
}
