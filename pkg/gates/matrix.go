package gates

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// Matrix errors.
var (
	ErrNoMatrix      = errors.New("gate has no fixed matrix representation")
	ErrBadParamCount = errors.New("wrong number of gate parameters")
	ErrNotUnitary    = errors.New("matrix is not unitary")
	ErrBadDimension  = errors.New("matrix has wrong dimension")
)

// Matrix is a square complex matrix in row-major order.
// Single-qubit gates are 2x2, two-qubit gates are 4x4.
type Matrix [][]complex128

// Dim returns the matrix dimension (2 or 4 for gate matrices).
func (m Matrix) Dim() int {
	return len(m)
}

// At returns the element at row r, column c.
func (m Matrix) At(r, c int) complex128 {
	return m[r][c]
}

// Mul returns the matrix product m * other.
func (m Matrix) Mul(other Matrix) Matrix {
	n := m.Dim()
	out := Zero(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			var sum complex128
			for k := 0; k < n; k++ {
				sum += m[r][k] * other[k][c]
			}
			out[r][c] = sum
		}
	}
	return out
}

// Zero returns an n x n zero matrix.
func Zero(n int) Matrix {
	m := make(Matrix, n)
	for r := range m {
		m[r] = make([]complex128, n)
	}
	return m
}

// Identity2 returns the 2x2 identity matrix.
func Identity2() Matrix {
	return Matrix{{1, 0}, {0, 1}}
}

// IsUnitary reports whether m is unitary within tolerance tol,
// by checking m * m^dagger against the identity.
func (m Matrix) IsUnitary(tol float64) bool {
	n := m.Dim()
	for r := range m {
		if len(m[r]) != n {
			return false
		}
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			var sum complex128
			for k := 0; k < n; k++ {
				sum += m[r][k] * cmplx.Conj(m[c][k])
			}
			want := complex128(0)
			if r == c {
				want = 1
			}
			if cmplx.Abs(sum-want) > tol {
				return false
			}
		}
	}
	return true
}

// invSqrt2 is 1/sqrt(2), the Hadamard normalization.
var invSqrt2 = complex(1/math.Sqrt2, 0)

// Matrix returns the unitary matrix of the gate for the given parameters.
// BasisState and QubitUnitary have no fixed matrix and return ErrNoMatrix;
// BasisState is applied structurally and QubitUnitary carries its matrix
// in the Op.
func (g Gate) Matrix(params []float64) (Matrix, error) {
	if want := g.NumParams(); want >= 0 && len(params) != want {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrBadParamCount, g, want, len(params))
	}

	switch g {
	case PauliX:
		return Matrix{{0, 1}, {1, 0}}, nil
	case PauliY:
		return Matrix{{0, -1i}, {1i, 0}}, nil
	case PauliZ:
		return Matrix{{1, 0}, {0, -1}}, nil
	case Hadamard:
		return Matrix{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}}, nil
	case S:
		return Matrix{{1, 0}, {0, 1i}}, nil
	case T:
		return Matrix{{1, 0}, {0, cmplx.Exp(1i * math.Pi / 4)}}, nil
	case SqrtX:
		return Matrix{
			{0.5 + 0.5i, 0.5 - 0.5i},
			{0.5 - 0.5i, 0.5 + 0.5i},
		}, nil
	case RX:
		c := complex(math.Cos(params[0]/2), 0)
		s := complex(0, -math.Sin(params[0]/2))
		return Matrix{{c, s}, {s, c}}, nil
	case RY:
		c := complex(math.Cos(params[0]/2), 0)
		s := complex(math.Sin(params[0]/2), 0)
		return Matrix{{c, -s}, {s, c}}, nil
	case RZ:
		e := cmplx.Exp(complex(0, -params[0]/2))
		return Matrix{{e, 0}, {0, cmplx.Conj(e)}}, nil
	case PhaseShift:
		return Matrix{{1, 0}, {0, cmplx.Exp(complex(0, params[0]))}}, nil
	case Rot:
		// RZ(omega) * RY(theta) * RZ(phi): phi is applied first.
		rzPhi, _ := RZ.Matrix(params[:1])
		ryTheta, _ := RY.Matrix(params[1:2])
		rzOmega, _ := RZ.Matrix(params[2:3])
		return rzOmega.Mul(ryTheta).Mul(rzPhi), nil
	case CNOT:
		return Matrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
		}, nil
	case CZ:
		return Matrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, -1},
		}, nil
	case SWAP:
		return Matrix{
			{1, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
		}, nil
	case SqrtSwap:
		return Matrix{
			{1, 0, 0, 0},
			{0, 0.5 + 0.5i, 0.5 - 0.5i, 0},
			{0, 0.5 - 0.5i, 0.5 + 0.5i, 0},
			{0, 0, 0, 1},
		}, nil
	case QubitUnitary, BasisState:
		return nil, fmt.Errorf("%w: %s", ErrNoMatrix, g)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownGate, uint8(g))
	}
}

// ObservableMatrix returns the Hermitian matrix of a single-qubit
// observable. Identity has no matrix to apply; callers handle it directly.
func ObservableMatrix(o Observable) (Matrix, error) {
	switch o {
	case ObsPauliX:
		return PauliX.Matrix(nil)
	case ObsPauliY:
		return PauliY.Matrix(nil)
	case ObsPauliZ:
		return PauliZ.Matrix(nil)
	case ObsHadamard:
		return Hadamard.Matrix(nil)
	case ObsIdentity:
		return nil, fmt.Errorf("%w: Identity", ErrNoMatrix)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownObservable, uint8(o))
	}
}
