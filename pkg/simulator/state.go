package simulator

import (
	"math/cmplx"
	"math/rand"
	"strings"

	"github.com/projectq-plugins/projectq-go/pkg/gates"
)

// Amplitude ordering: wire 0 is the most significant bit of the state
// index, so the bitstring for index i reads left to right as wires
// 0..n-1. Probabilities uses the same ordering for its keys.

// applySingle applies a 2x2 matrix to one wire of the state vector.
func applySingle(state []complex128, wires, wire int, m gates.Matrix) {
	stride := 1 << uint(wires-1-wire)
	for base := 0; base < len(state); base += 2 * stride {
		for i := base; i < base+stride; i++ {
			a0, a1 := state[i], state[i+stride]
			state[i] = m[0][0]*a0 + m[0][1]*a1
			state[i+stride] = m[1][0]*a0 + m[1][1]*a1
		}
	}
}

// applyTwo applies a 4x4 matrix to a wire pair. The matrix basis order
// is |w1 w2> = 00, 01, 10, 11, with w1 first (the control for CNOT/CZ).
func applyTwo(state []complex128, wires, w1, w2 int, m gates.Matrix) {
	b1 := 1 << uint(wires-1-w1)
	b2 := 1 << uint(wires-1-w2)
	for i := range state {
		if i&b1 != 0 || i&b2 != 0 {
			continue
		}
		idx := [4]int{i, i | b2, i | b1, i | b1 | b2}
		var a [4]complex128
		for k := 0; k < 4; k++ {
			a[k] = state[idx[k]]
		}
		for r := 0; r < 4; r++ {
			var sum complex128
			for c := 0; c < 4; c++ {
				sum += m[r][c] * a[c]
			}
			state[idx[r]] = sum
		}
	}
}

// expectation computes <psi|M|psi> for a single-qubit Hermitian M on
// the given wire. The result is real for Hermitian M; the real part is
// returned.
func expectation(state []complex128, wires, wire int, m gates.Matrix) float64 {
	phi := make([]complex128, len(state))
	copy(phi, state)
	applySingle(phi, wires, wire, m)

	var sum complex128
	for i := range state {
		sum += cmplx.Conj(state[i]) * phi[i]
	}
	return real(sum)
}

// probabilities returns the non-negligible basis-state probabilities,
// keyed by bitstring with wire 0 leftmost.
func probabilities(state []complex128, wires int) map[string]float64 {
	const negligible = 1e-12

	probs := make(map[string]float64)
	for i, a := range state {
		p := real(a)*real(a) + imag(a)*imag(a)
		if p < negligible {
			continue
		}
		probs[bitstring(i, wires)] = p
	}
	return probs
}

// bitstring formats a state index with wire 0 as the leftmost character.
func bitstring(index, wires int) string {
	var b strings.Builder
	b.Grow(wires)
	for w := 0; w < wires; w++ {
		if index&(1<<uint(wires-1-w)) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// binomial draws the number of successes in n Bernoulli trials with
// success probability p.
func binomial(rng *rand.Rand, n int, p float64) int {
	successes := 0
	for i := 0; i < n; i++ {
		if rng.Float64() < p {
			successes++
		}
	}
	return successes
}

// sampleExpval degrades an exact dichotomic expectation value to a
// finite-sample estimate over the given number of shots.
func sampleExpval(rng *rand.Rand, exact float64, shots int) float64 {
	p0 := (exact + 1) / 2
	n0 := binomial(rng, shots, p0)
	return float64(n0-(shots-n0)) / float64(shots)
}
