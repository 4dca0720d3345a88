// Package qasm serializes gate sequences to OpenQASM 2.0, the program
// format the hosted hardware service accepts. Gates map onto the
// qelib1.inc names; Rot and BasisState are emitted as their elementary
// decompositions. Gates with no hardware representation (SqrtSwap,
// QubitUnitary) are rejected.
package qasm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/projectq-plugins/projectq-go/pkg/gates"
)

// Serialization errors.
var (
	ErrNotRepresentable = errors.New("gate has no OpenQASM representation")
)

// qasmNames maps gates onto their qelib1.inc instruction names.
// Parameterized and decomposed gates are handled separately.
var qasmNames = map[gates.Gate]string{
	gates.PauliX:     "x",
	gates.PauliY:     "y",
	gates.PauliZ:     "z",
	gates.Hadamard:   "h",
	gates.S:          "s",
	gates.T:          "t",
	gates.SqrtX:      "sx",
	gates.CNOT:       "cx",
	gates.CZ:         "cz",
	gates.SWAP:       "swap",
	gates.RX:         "rx",
	gates.RY:         "ry",
	gates.RZ:         "rz",
	gates.PhaseShift: "u1",
}

// Serialize emits an OpenQASM 2.0 program for the operation sequence on
// a register of the given width. Every op is validated against the wire
// count before anything is emitted. When measure is true, a measurement
// of every qubit into the classical register is appended.
func Serialize(wires int, ops []gates.Op, measure bool) (string, error) {
	for _, op := range ops {
		if err := op.Validate(wires); err != nil {
			return "", fmt.Errorf("serializing %s: %w", op.Gate, err)
		}
		if op.Gate == gates.SqrtSwap || op.Gate == gates.QubitUnitary {
			return "", fmt.Errorf("%w: %s", ErrNotRepresentable, op.Gate)
		}
	}

	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", wires)
	fmt.Fprintf(&b, "creg c[%d];\n", wires)

	for _, op := range ops {
		writeOp(&b, op)
	}

	if measure {
		for w := 0; w < wires; w++ {
			fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", w, w)
		}
	}
	return b.String(), nil
}

// writeOp emits the instruction line(s) for one validated operation.
func writeOp(b *strings.Builder, op gates.Op) {
	switch op.Gate {
	case gates.BasisState:
		for i, bit := range op.Params {
			if bit == 1 {
				fmt.Fprintf(b, "x q[%d];\n", op.Wires[i])
			}
		}
	case gates.Rot:
		// RZ(phi), RY(theta), RZ(omega) in application order.
		w := op.Wires[0]
		fmt.Fprintf(b, "rz(%s) q[%d];\n", formatParam(op.Params[0]), w)
		fmt.Fprintf(b, "ry(%s) q[%d];\n", formatParam(op.Params[1]), w)
		fmt.Fprintf(b, "rz(%s) q[%d];\n", formatParam(op.Params[2]), w)
	case gates.RX, gates.RY, gates.RZ, gates.PhaseShift:
		fmt.Fprintf(b, "%s(%s) q[%d];\n", qasmNames[op.Gate], formatParam(op.Params[0]), op.Wires[0])
	case gates.CNOT, gates.CZ, gates.SWAP:
		fmt.Fprintf(b, "%s q[%d],q[%d];\n", qasmNames[op.Gate], op.Wires[0], op.Wires[1])
	default:
		fmt.Fprintf(b, "%s q[%d];\n", qasmNames[op.Gate], op.Wires[0])
	}
}

// formatParam renders a gate angle without trailing zeros.
func formatParam(p float64) string {
	return fmt.Sprintf("%g", p)
}

// Representable reports whether the gate can be serialized.
func Representable(g gates.Gate) bool {
	if g == gates.SqrtSwap || g == gates.QubitUnitary {
		return false
	}
	if _, ok := qasmNames[g]; ok {
		return true
	}
	return g == gates.Rot || g == gates.BasisState
}
