// Package ibm implements the "projectq.ibm" device: circuit execution
// on the hosted quantum service, either on real chips or on the hosted
// high-performance simulator.
//
// The device queues operations locally and serializes them to OpenQASM
// at measurement time. Every wire is measured in the computational
// basis in a single job; requested observables other than PauliZ are
// rotated into the Z basis with a short gate sequence beforehand. The
// returned histogram therefore has finite-sample accuracy: expectation
// values (and gradients computed from them) fluctuate from run to run.
//
// Client wraps the service HTTP API: password login, job submission,
// and context-aware polling with exponential backoff. Completed jobs
// can be recorded in a local job store so a timed-out run is recovered
// with the retrieve-execution option instead of re-submitted.
package ibm
