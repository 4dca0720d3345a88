package gates

import (
	"errors"
	"testing"
)

func TestGateString(t *testing.T) {
	cases := []struct {
		gate Gate
		want string
	}{
		{PauliX, "PauliX"},
		{Hadamard, "Hadamard"},
		{CNOT, "CNOT"},
		{SqrtSwap, "SqrtSwap"},
		{PhaseShift, "PhaseShift"},
		{Rot, "Rot"},
		{QubitUnitary, "QubitUnitary"},
		{BasisState, "BasisState"},
		{Gate(200), "Gate(200)"},
	}
	for _, tc := range cases {
		if got := tc.gate.String(); got != tc.want {
			t.Errorf("Gate(%d).String() = %q, want %q", uint8(tc.gate), got, tc.want)
		}
	}
}

func TestGateParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, g := range All() {
			parsed, err := Parse(g.String())
			if err != nil {
				t.Fatalf("Parse(%q): %v", g.String(), err)
			}
			if parsed != g {
				t.Errorf("Parse(%q) = %v, want %v", g.String(), parsed, g)
			}
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Parse("Toffoli")
		if !errors.Is(err, ErrUnknownGate) {
			t.Errorf("Parse(Toffoli) error = %v, want ErrUnknownGate", err)
		}
	})
}

func TestObservableParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, o := range AllObservables() {
			parsed, err := ParseObservable(o.String())
			if err != nil {
				t.Fatalf("ParseObservable(%q): %v", o.String(), err)
			}
			if parsed != o {
				t.Errorf("ParseObservable(%q) = %v, want %v", o.String(), parsed, o)
			}
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseObservable("Hermitian")
		if !errors.Is(err, ErrUnknownObservable) {
			t.Errorf("ParseObservable(Hermitian) error = %v, want ErrUnknownObservable", err)
		}
	})
}

func TestGateArity(t *testing.T) {
	cases := []struct {
		gate       Gate
		wantWires  int
		wantParams int
	}{
		{PauliX, 1, 0},
		{Hadamard, 1, 0},
		{CNOT, 2, 0},
		{CZ, 2, 0},
		{SWAP, 2, 0},
		{SqrtSwap, 2, 0},
		{RX, 1, 1},
		{RY, 1, 1},
		{RZ, 1, 1},
		{PhaseShift, 1, 1},
		{Rot, 1, 3},
		{QubitUnitary, 1, 0},
		{BasisState, -1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.gate.String(), func(t *testing.T) {
			if got := tc.gate.NumWires(); got != tc.wantWires {
				t.Errorf("NumWires() = %d, want %d", got, tc.wantWires)
			}
			if got := tc.gate.NumParams(); got != tc.wantParams {
				t.Errorf("NumParams() = %d, want %d", got, tc.wantParams)
			}
		})
	}
}
