// Package gates defines the gate and observable catalogue shared by all
// devices: gate identifiers with their parameter and wire arity, the
// unitary matrices of the fixed and parameterized gates, and the
// circuit-level Op type that devices consume.
//
// Gate names follow the framework-facing operation names (PauliX, CNOT,
// RX, Rot, BasisState, ...). Two gates are special:
//
//   - BasisState is not a unitary with a fixed arity; it prepares a
//     computational basis state and carries one bit per target wire.
//   - QubitUnitary carries an explicit single-qubit matrix instead of
//     real parameters.
//
// Which devices accept which gates is decided by the device packages;
// this package only describes the gates themselves.
package gates
