// Package circuit describes executable circuits: an ordered gate
// sequence plus the expectation values to read afterwards. Circuits
// are built in code or loaded from YAML, validated against a target
// device, and executed with Run.
package circuit

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/projectq-plugins/projectq-go/pkg/gates"
)

// Circuit errors.
var (
	ErrNoWires        = errors.New("circuit needs at least one wire")
	ErrNoMeasurements = errors.New("circuit declares no measurements")
)

// Step is one gate application in YAML form.
type Step struct {
	// Gate is the framework-facing gate name, e.g. "RX".
	Gate string `yaml:"gate"`

	// Wires the gate acts on.
	Wires []int `yaml:"wires"`

	// Params are gate parameters; for BasisState, one bit per wire.
	Params []float64 `yaml:"params,omitempty"`
}

// Measure requests one expectation value in YAML form.
type Measure struct {
	// Observable is the framework-facing observable name, e.g. "PauliZ".
	Observable string `yaml:"observable"`

	// Wires the observable is measured on.
	Wires []int `yaml:"wires"`
}

// Circuit is an executable circuit description.
type Circuit struct {
	// Name is an optional label used in logs and tool output.
	Name string `yaml:"name,omitempty"`

	// Wires is the register width the circuit needs.
	Wires int `yaml:"wires"`

	// Operations in application order.
	Operations []Step `yaml:"operations"`

	// Measurements to read after the operations.
	Measurements []Measure `yaml:"measurements"`
}

// Parse decodes a YAML circuit description.
func Parse(data []byte) (*Circuit, error) {
	var c Circuit
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing circuit: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads and parses a YAML circuit file.
func LoadFile(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// check validates the structural invariants that don't need a device.
func (c *Circuit) check() error {
	if c.Wires < 1 {
		return fmt.Errorf("%w: got %d", ErrNoWires, c.Wires)
	}
	if len(c.Measurements) == 0 {
		return ErrNoMeasurements
	}
	if _, err := c.Ops(); err != nil {
		return err
	}
	if _, err := c.MeasurementSet(); err != nil {
		return err
	}
	return nil
}

// Ops resolves the operation steps into validated gate applications.
func (c *Circuit) Ops() ([]gates.Op, error) {
	ops := make([]gates.Op, 0, len(c.Operations))
	for i, step := range c.Operations {
		g, err := gates.Parse(step.Gate)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		op := gates.Op{
			Gate:   g,
			Wires:  append([]int(nil), step.Wires...),
			Params: append([]float64(nil), step.Params...),
		}
		if err := op.Validate(c.Wires); err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, step.Gate, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// MeasurementSet resolves the measurement steps.
func (c *Circuit) MeasurementSet() ([]gates.Measurement, error) {
	ms := make([]gates.Measurement, 0, len(c.Measurements))
	for i, step := range c.Measurements {
		obs, err := gates.ParseObservable(step.Observable)
		if err != nil {
			return nil, fmt.Errorf("measurement %d: %w", i, err)
		}
		m := gates.Measurement{
			Observable: obs,
			Wires:      append([]int(nil), step.Wires...),
		}
		if err := m.Validate(c.Wires); err != nil {
			return nil, fmt.Errorf("measurement %d (%s): %w", i, step.Observable, err)
		}
		ms = append(ms, m)
	}
	return ms, nil
}
