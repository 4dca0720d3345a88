package gates

import (
	"errors"
	"fmt"
)

// Gate catalogue errors.
var (
	ErrUnknownGate       = errors.New("unknown gate")
	ErrUnknownObservable = errors.New("unknown observable")
)

// Gate identifies a quantum gate.
type Gate uint8

const (
	// PauliX is the bit-flip gate.
	PauliX Gate = iota
	// PauliY is the Pauli Y gate.
	PauliY
	// PauliZ is the phase-flip gate.
	PauliZ
	// Hadamard is the Hadamard gate.
	Hadamard
	// S is the phase gate diag(1, i).
	S
	// T is the phase gate diag(1, exp(i*pi/4)).
	T
	// SqrtX is the square root of PauliX.
	SqrtX
	// CNOT is the controlled-X gate. The first wire is the control.
	CNOT
	// CZ is the controlled-Z gate. The first wire is the control.
	CZ
	// SWAP exchanges two qubits.
	SWAP
	// SqrtSwap is the square root of SWAP.
	SqrtSwap
	// RX is the rotation exp(-i*theta*X/2).
	RX
	// RY is the rotation exp(-i*theta*Y/2).
	RY
	// RZ is the rotation exp(-i*theta*Z/2).
	RZ
	// PhaseShift is the phase gate diag(1, exp(i*phi)).
	PhaseShift
	// Rot is the arbitrary single-qubit rotation RZ(omega)*RY(theta)*RZ(phi).
	Rot
	// QubitUnitary applies an explicit single-qubit unitary matrix.
	QubitUnitary
	// BasisState prepares a computational basis state. It must be the
	// first operation applied on a device.
	BasisState

	gateCount // sentinel, keep last
)

var gateNames = map[Gate]string{
	PauliX:       "PauliX",
	PauliY:       "PauliY",
	PauliZ:       "PauliZ",
	Hadamard:     "Hadamard",
	S:            "S",
	T:            "T",
	SqrtX:        "SqrtX",
	CNOT:         "CNOT",
	CZ:           "CZ",
	SWAP:         "SWAP",
	SqrtSwap:     "SqrtSwap",
	RX:           "RX",
	RY:           "RY",
	RZ:           "RZ",
	PhaseShift:   "PhaseShift",
	Rot:          "Rot",
	QubitUnitary: "QubitUnitary",
	BasisState:   "BasisState",
}

// String returns the framework-facing gate name.
func (g Gate) String() string {
	if name, ok := gateNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Gate(%d)", uint8(g))
}

// IsValid reports whether g is a known gate.
func (g Gate) IsValid() bool {
	return g < gateCount
}

// NumParams returns the number of real parameters the gate takes.
// BasisState returns -1: it takes one bit per target wire.
func (g Gate) NumParams() int {
	switch g {
	case RX, RY, RZ, PhaseShift:
		return 1
	case Rot:
		return 3
	case BasisState:
		return -1
	default:
		return 0
	}
}

// NumWires returns the number of wires the gate acts on.
// BasisState returns -1: it acts on any number of wires.
func (g Gate) NumWires() int {
	switch g {
	case CNOT, CZ, SWAP, SqrtSwap:
		return 2
	case BasisState:
		return -1
	default:
		return 1
	}
}

// Parse resolves a gate by its framework-facing name.
func Parse(name string) (Gate, error) {
	for g, n := range gateNames {
		if n == name {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGate, name)
}

// All returns all known gates in declaration order.
func All() []Gate {
	gs := make([]Gate, 0, int(gateCount))
	for g := Gate(0); g < gateCount; g++ {
		gs = append(gs, g)
	}
	return gs
}

// Observable identifies a measurable quantity.
type Observable uint8

const (
	// ObsPauliX measures in the X basis.
	ObsPauliX Observable = iota
	// ObsPauliY measures in the Y basis.
	ObsPauliY
	// ObsPauliZ measures in the computational basis.
	ObsPauliZ
	// ObsHadamard measures (X+Z)/sqrt(2).
	ObsHadamard
	// ObsIdentity always yields 1. Observable only, never a gate.
	ObsIdentity

	observableCount // sentinel, keep last
)

var observableNames = map[Observable]string{
	ObsPauliX:   "PauliX",
	ObsPauliY:   "PauliY",
	ObsPauliZ:   "PauliZ",
	ObsHadamard: "Hadamard",
	ObsIdentity: "Identity",
}

// String returns the framework-facing observable name.
func (o Observable) String() string {
	if name, ok := observableNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Observable(%d)", uint8(o))
}

// IsValid reports whether o is a known observable.
func (o Observable) IsValid() bool {
	return o < observableCount
}

// ParseObservable resolves an observable by its framework-facing name.
func ParseObservable(name string) (Observable, error) {
	for o, n := range observableNames {
		if n == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownObservable, name)
}

// AllObservables returns all known observables in declaration order.
func AllObservables() []Observable {
	os := make([]Observable, 0, int(observableCount))
	for o := Observable(0); o < observableCount; o++ {
		os = append(os, o)
	}
	return os
}
