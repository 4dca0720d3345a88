// Package simulator implements the "projectq.simulator" device: a local
// state-vector simulation of the full gate set.
//
// With zero shots (the default) expectation values are exact. With a
// positive shot count the exact value is degraded to a finite-sample
// estimate by a binomial draw, so gradients computed on top of the
// device fluctuate the way they would on sampled hardware. Sampling is
// deterministic under device.WithSeed.
package simulator
