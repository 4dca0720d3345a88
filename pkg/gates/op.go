package gates

import (
	"errors"
	"fmt"
	"math"
)

// Op validation errors.
var (
	ErrWireOutOfRange = errors.New("wire index out of range")
	ErrBadWireCount   = errors.New("wrong number of wires")
	ErrDuplicateWire  = errors.New("duplicate wire index")
	ErrBadBasisState  = errors.New("basis state bits must be 0 or 1, one per wire")
	ErrMissingUnitary = errors.New("QubitUnitary requires a 2x2 unitary matrix")
)

// unitaryTolerance is the tolerance used when checking user-supplied
// QubitUnitary matrices.
const unitaryTolerance = 1e-9

// Op is a single gate application within a circuit: a gate, the wires it
// acts on, and its parameters.
//
// For QubitUnitary, Unitary holds the explicit matrix and Params is empty.
// For BasisState, Params holds one bit (0 or 1) per entry of Wires.
type Op struct {
	Gate   Gate
	Wires  []int
	Params []float64

	// Unitary is set only for QubitUnitary.
	Unitary Matrix
}

// Validate checks the op against a device with numWires wires: gate
// validity, wire arity and bounds, parameter count, and the special
// BasisState/QubitUnitary payloads.
func (op Op) Validate(numWires int) error {
	if !op.Gate.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownGate, uint8(op.Gate))
	}

	if want := op.Gate.NumWires(); want >= 0 && len(op.Wires) != want {
		return fmt.Errorf("%w: %s acts on %d wires, got %d",
			ErrBadWireCount, op.Gate, want, len(op.Wires))
	}
	if op.Gate == BasisState && len(op.Wires) == 0 {
		return fmt.Errorf("%w: %s needs at least one wire", ErrBadWireCount, op.Gate)
	}

	seen := make(map[int]bool, len(op.Wires))
	for _, w := range op.Wires {
		if w < 0 || w >= numWires {
			return fmt.Errorf("%w: wire %d on a %d-wire device", ErrWireOutOfRange, w, numWires)
		}
		if seen[w] {
			return fmt.Errorf("%w: wire %d", ErrDuplicateWire, w)
		}
		seen[w] = true
	}

	switch op.Gate {
	case BasisState:
		if len(op.Params) != len(op.Wires) {
			return fmt.Errorf("%w: %d bits for %d wires", ErrBadBasisState, len(op.Params), len(op.Wires))
		}
		for _, b := range op.Params {
			if b != 0 && b != 1 {
				return fmt.Errorf("%w: got %v", ErrBadBasisState, b)
			}
		}
	case QubitUnitary:
		if op.Unitary.Dim() != 2 {
			return fmt.Errorf("%w: got dimension %d", ErrMissingUnitary, op.Unitary.Dim())
		}
		if !op.Unitary.IsUnitary(unitaryTolerance) {
			return ErrNotUnitary
		}
	default:
		if want := op.Gate.NumParams(); len(op.Params) != want {
			return fmt.Errorf("%w: %s takes %d, got %d",
				ErrBadParamCount, op.Gate, want, len(op.Params))
		}
	}

	return nil
}

// Measurement is a request for the expectation value of an observable on
// specific wires.
type Measurement struct {
	Observable Observable
	Wires      []int
}

// Validate checks the measurement against a device with numWires wires.
func (m Measurement) Validate(numWires int) error {
	if !m.Observable.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownObservable, uint8(m.Observable))
	}
	if len(m.Wires) != 1 {
		return fmt.Errorf("%w: observables act on 1 wire, got %d", ErrBadWireCount, len(m.Wires))
	}
	if w := m.Wires[0]; w < 0 || w >= numWires {
		return fmt.Errorf("%w: wire %d on a %d-wire device", ErrWireOutOfRange, w, numWires)
	}
	return nil
}

// DiagonalizingOps returns the gate sequence that rotates the given
// observable into the computational basis, so a Z-basis measurement on
// the wire yields the observable's value. PauliZ and Identity need no
// rotation and return nil.
func DiagonalizingOps(o Observable, wire int) ([]Op, error) {
	switch o {
	case ObsPauliX:
		return []Op{{Gate: Hadamard, Wires: []int{wire}}}, nil
	case ObsPauliY:
		return []Op{
			{Gate: PauliZ, Wires: []int{wire}},
			{Gate: S, Wires: []int{wire}},
			{Gate: Hadamard, Wires: []int{wire}},
		}, nil
	case ObsHadamard:
		return []Op{{Gate: RY, Wires: []int{wire}, Params: []float64{-math.Pi / 4}}}, nil
	case ObsPauliZ, ObsIdentity:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownObservable, uint8(o))
	}
}
