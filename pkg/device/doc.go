// Package device defines the device abstraction and the registry that
// maps device identifiers to constructors.
//
// A Device is a named backend target that executes quantum circuits:
// operations are applied with Apply, then expectation values are read
// with Expval. Backends register themselves under their identifier
// (e.g. "projectq.simulator") in an init function, database/sql style,
// and callers construct them by name:
//
//	dev, err := device.New("projectq.simulator", device.WithWires(2))
//
// Options carry everything a backend may need: wire count, shot count,
// credentials for hardware-backed devices, seeding for simulators.
// Each backend validates the subset it understands and ignores the rest,
// mirroring how the wrapped backends accept keyword arguments.
package device
