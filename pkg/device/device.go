package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/projectq-plugins/projectq-go/pkg/gates"
)

// Device errors.
var (
	ErrUnknownDevice          = errors.New("unknown device")
	ErrUnsupportedOperation   = errors.New("operation not supported on this device")
	ErrUnsupportedObservable  = errors.New("observable not supported on this device")
	ErrBasisStateAfterGates   = errors.New("basis state preparation must precede all other operations")
	ErrInvalidWireCount       = errors.New("device needs at least one wire")
	ErrMissingCredentials     = errors.New("missing hardware credentials")
	ErrMeasurementPreparation = errors.New("measurement basis not prepared")
)

// Device is a named backend target that executes quantum circuits.
//
// The lifecycle is: construct (or Reset), Apply operations, read Expval
// or Variance per observable, Reset for the next evaluation. Close
// releases any backend resources; for local simulators it is a no-op.
type Device interface {
	// Name returns the human-readable device name.
	Name() string

	// ShortName returns the registry identifier, e.g. "projectq.simulator".
	ShortName() string

	// Wires returns the number of addressable qubit slots.
	Wires() int

	// Shots returns the number of samples used to estimate expectation
	// values. Zero means exact values where the backend supports them.
	Shots() int

	// Operations returns the gates the device supports.
	Operations() []gates.Gate

	// Observables returns the observables the device supports.
	Observables() []gates.Observable

	// SupportsOperation reports whether the device accepts the gate.
	SupportsOperation(g gates.Gate) bool

	// SupportsObservable reports whether the device accepts the observable.
	SupportsObservable(o gates.Observable) bool

	// Apply applies one operation to the register.
	Apply(op gates.Op) error

	// Expval returns the expectation value of an observable after the
	// applied operations. Hardware-backed devices may perform network
	// I/O here, hence the context.
	Expval(ctx context.Context, m gates.Measurement) (float64, error)

	// Variance returns the variance of a dichotomic observable,
	// 1 - Expval^2.
	Variance(ctx context.Context, m gates.Measurement) (float64, error)

	// Probabilities returns the basis-state histogram over all wires.
	// Keys are bitstrings with wire 0 as the leftmost character.
	Probabilities(ctx context.Context) (map[string]float64, error)

	// Reset reallocates the register, discarding all applied operations.
	Reset() error

	// Close releases backend resources. The device must not be used
	// after Close.
	Close() error
}

// MeasurementPreparer is implemented by devices that must know all
// requested measurements before the first Expval call, because the
// backend measures every wire in the computational basis in a single
// run. The circuit runner calls PreMeasure once with the full set.
type MeasurementPreparer interface {
	PreMeasure(ctx context.Context, ms []gates.Measurement) error
}

// CheckOperation validates an op against a device's supported set and
// wire count. Backends share it at the top of Apply.
func CheckOperation(d Device, op gates.Op) error {
	if !d.SupportsOperation(op.Gate) {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedOperation, op.Gate, d.ShortName())
	}
	return op.Validate(d.Wires())
}

// CheckMeasurement validates a measurement against a device's supported
// set and wire count.
func CheckMeasurement(d Device, m gates.Measurement) error {
	if !d.SupportsObservable(m.Observable) {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedObservable, m.Observable, d.ShortName())
	}
	return m.Validate(d.Wires())
}
