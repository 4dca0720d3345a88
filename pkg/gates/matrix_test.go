package gates

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

const tol = 1e-12

func matricesEqual(a, b Matrix, tol float64) bool {
	if a.Dim() != b.Dim() {
		return false
	}
	for r := range a {
		for c := range a[r] {
			if cmplx.Abs(a[r][c]-b[r][c]) > tol {
				return false
			}
		}
	}
	return true
}

func TestGateMatricesUnitary(t *testing.T) {
	params := map[Gate][]float64{
		RX:         {0.3},
		RY:         {1.7},
		RZ:         {-0.42},
		PhaseShift: {math.Pi / 3},
		Rot:        {0.1, 0.2, 0.3},
	}

	for _, g := range All() {
		if g == QubitUnitary || g == BasisState {
			continue
		}
		t.Run(g.String(), func(t *testing.T) {
			m, err := g.Matrix(params[g])
			if err != nil {
				t.Fatalf("Matrix: %v", err)
			}
			wantDim := 2
			if g.NumWires() == 2 {
				wantDim = 4
			}
			if m.Dim() != wantDim {
				t.Errorf("Dim() = %d, want %d", m.Dim(), wantDim)
			}
			if !m.IsUnitary(tol) {
				t.Errorf("matrix of %s is not unitary", g)
			}
		})
	}
}

func TestGateMatrixValues(t *testing.T) {
	t.Run("PauliX", func(t *testing.T) {
		m, err := PauliX.Matrix(nil)
		if err != nil {
			t.Fatal(err)
		}
		want := Matrix{{0, 1}, {1, 0}}
		if !matricesEqual(m, want, tol) {
			t.Errorf("PauliX matrix = %v, want %v", m, want)
		}
	})

	t.Run("SqrtX squares to X", func(t *testing.T) {
		m, err := SqrtX.Matrix(nil)
		if err != nil {
			t.Fatal(err)
		}
		x, _ := PauliX.Matrix(nil)
		if !matricesEqual(m.Mul(m), x, tol) {
			t.Errorf("SqrtX^2 = %v, want PauliX", m.Mul(m))
		}
	})

	t.Run("SqrtSwap squares to SWAP", func(t *testing.T) {
		m, err := SqrtSwap.Matrix(nil)
		if err != nil {
			t.Fatal(err)
		}
		sw, _ := SWAP.Matrix(nil)
		if !matricesEqual(m.Mul(m), sw, tol) {
			t.Errorf("SqrtSwap^2 = %v, want SWAP", m.Mul(m))
		}
	})

	t.Run("S squares to Z", func(t *testing.T) {
		m, _ := S.Matrix(nil)
		z, _ := PauliZ.Matrix(nil)
		if !matricesEqual(m.Mul(m), z, tol) {
			t.Errorf("S^2 = %v, want PauliZ", m.Mul(m))
		}
	})

	t.Run("T squares to S", func(t *testing.T) {
		m, _ := T.Matrix(nil)
		s, _ := S.Matrix(nil)
		if !matricesEqual(m.Mul(m), s, tol) {
			t.Errorf("T^2 = %v, want S", m.Mul(m))
		}
	})

	t.Run("RX at pi is -iX", func(t *testing.T) {
		m, err := RX.Matrix([]float64{math.Pi})
		if err != nil {
			t.Fatal(err)
		}
		want := Matrix{{0, -1i}, {-1i, 0}}
		if !matricesEqual(m, want, tol) {
			t.Errorf("RX(pi) = %v, want %v", m, want)
		}
	})

	t.Run("Rot composes Euler rotations", func(t *testing.T) {
		phi, theta, omega := 0.4, 1.1, -0.7
		m, err := Rot.Matrix([]float64{phi, theta, omega})
		if err != nil {
			t.Fatal(err)
		}
		rzPhi, _ := RZ.Matrix([]float64{phi})
		ryTheta, _ := RY.Matrix([]float64{theta})
		rzOmega, _ := RZ.Matrix([]float64{omega})
		want := rzOmega.Mul(ryTheta).Mul(rzPhi)
		if !matricesEqual(m, want, tol) {
			t.Errorf("Rot = %v, want %v", m, want)
		}
	})
}

func TestGateMatrixErrors(t *testing.T) {
	t.Run("wrong param count", func(t *testing.T) {
		_, err := RX.Matrix(nil)
		if !errors.Is(err, ErrBadParamCount) {
			t.Errorf("RX.Matrix(nil) error = %v, want ErrBadParamCount", err)
		}
		_, err = PauliX.Matrix([]float64{0.5})
		if !errors.Is(err, ErrBadParamCount) {
			t.Errorf("PauliX.Matrix([0.5]) error = %v, want ErrBadParamCount", err)
		}
	})

	t.Run("no fixed matrix", func(t *testing.T) {
		for _, g := range []Gate{QubitUnitary, BasisState} {
			if _, err := g.Matrix(nil); !errors.Is(err, ErrNoMatrix) {
				t.Errorf("%s.Matrix(nil) error = %v, want ErrNoMatrix", g, err)
			}
		}
	})
}

func TestObservableMatrix(t *testing.T) {
	t.Run("hermitian", func(t *testing.T) {
		for _, o := range []Observable{ObsPauliX, ObsPauliY, ObsPauliZ, ObsHadamard} {
			m, err := ObservableMatrix(o)
			if err != nil {
				t.Fatalf("ObservableMatrix(%s): %v", o, err)
			}
			for r := 0; r < 2; r++ {
				for c := 0; c < 2; c++ {
					if cmplx.Abs(m[r][c]-cmplx.Conj(m[c][r])) > tol {
						t.Errorf("%s matrix is not Hermitian", o)
					}
				}
			}
		}
	})

	t.Run("identity has no matrix", func(t *testing.T) {
		if _, err := ObservableMatrix(ObsIdentity); !errors.Is(err, ErrNoMatrix) {
			t.Errorf("ObservableMatrix(Identity) error = %v, want ErrNoMatrix", err)
		}
	})
}

func TestIsUnitary(t *testing.T) {
	if !Identity2().IsUnitary(tol) {
		t.Error("Identity2 should be unitary")
	}
	notUnitary := Matrix{{1, 0}, {0, 2}}
	if notUnitary.IsUnitary(tol) {
		t.Error("diag(1,2) should not be unitary")
	}
	ragged := Matrix{{1, 0}, {0}}
	if ragged.IsUnitary(tol) {
		t.Error("ragged matrix should not be unitary")
	}
}
