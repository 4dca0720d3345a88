// Package classical implements the "projectq.classical" device: a
// classical bit simulation restricted to the gates that permute
// computational basis states (PauliX, CNOT, BasisState). It is cheap at
// any wire count and useful for sanity-checking circuit plumbing.
package classical

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/projectq-plugins/projectq-go/pkg/device"
	"github.com/projectq-plugins/projectq-go/pkg/gates"
	"github.com/projectq-plugins/projectq-go/pkg/log"
)

// ShortName is the registry identifier of the classical simulator.
const ShortName = "projectq.classical"

// deviceName is the human-readable device name.
const deviceName = "ProjectQ ClassicalSimulator device"

func init() {
	device.Register(ShortName, func(o *device.Options) (device.Device, error) {
		return newFromOptions(o)
	})
}

// supportedOperations are the basis-state-permuting gates.
var supportedOperations = []gates.Gate{
	gates.PauliX, gates.CNOT, gates.BasisState,
}

// supportedObservables on a classical register.
var supportedObservables = []gates.Observable{
	gates.ObsPauliZ, gates.ObsIdentity,
}

// Classical is a classical bit register device.
type Classical struct {
	mu sync.Mutex

	wires int
	bits  []bool

	firstOperation bool

	logger log.Logger
	runID  string
}

// New constructs a classical simulator device.
func New(opts ...device.Option) (*Classical, error) {
	dev, err := device.New(ShortName, opts...)
	if err != nil {
		return nil, err
	}
	return dev.(*Classical), nil
}

func newFromOptions(o *device.Options) (*Classical, error) {
	c := &Classical{
		wires:  o.Wires,
		logger: o.Logger,
	}
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the human-readable device name.
func (c *Classical) Name() string { return deviceName }

// ShortName returns the registry identifier.
func (c *Classical) ShortName() string { return ShortName }

// Wires returns the number of bit slots.
func (c *Classical) Wires() int { return c.wires }

// Shots returns 0: classical expectation values are always exact.
func (c *Classical) Shots() int { return 0 }

// Operations returns the supported gate set.
func (c *Classical) Operations() []gates.Gate {
	return append([]gates.Gate(nil), supportedOperations...)
}

// Observables returns the supported observables.
func (c *Classical) Observables() []gates.Observable {
	return append([]gates.Observable(nil), supportedObservables...)
}

// SupportsOperation reports whether the device accepts the gate.
func (c *Classical) SupportsOperation(g gates.Gate) bool {
	for _, s := range supportedOperations {
		if s == g {
			return true
		}
	}
	return false
}

// SupportsObservable reports whether the device accepts the observable.
func (c *Classical) SupportsObservable(o gates.Observable) bool {
	for _, s := range supportedObservables {
		if s == o {
			return true
		}
	}
	return false
}

// Apply applies one operation to the bit register.
func (c *Classical) Apply(op gates.Op) error {
	if err := device.CheckOperation(c, op); err != nil {
		c.logError(err, "apply")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if op.Gate == gates.BasisState && !c.firstOperation {
		err := fmt.Errorf("%w: %s on %s", device.ErrBasisStateAfterGates, op.Gate, ShortName)
		c.logError(err, "apply")
		return err
	}
	c.firstOperation = false

	switch op.Gate {
	case gates.PauliX:
		c.bits[op.Wires[0]] = !c.bits[op.Wires[0]]
	case gates.CNOT:
		if c.bits[op.Wires[0]] {
			c.bits[op.Wires[1]] = !c.bits[op.Wires[1]]
		}
	case gates.BasisState:
		for i, bit := range op.Params {
			c.bits[op.Wires[i]] = bit == 1
		}
	}

	c.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     c.runID,
		Device:    ShortName,
		Category:  log.CategoryGate,
		Gate: &log.GateEvent{
			Name:   op.Gate.String(),
			Wires:  append([]int(nil), op.Wires...),
			Params: append([]float64(nil), op.Params...),
		},
	})
	return nil
}

// Expval returns the exact expectation value on the bit register.
// PauliZ yields 1 - 2*bit; Identity yields 1.
func (c *Classical) Expval(ctx context.Context, m gates.Measurement) (float64, error) {
	if err := device.CheckMeasurement(c, m); err != nil {
		c.logError(err, "expval")
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	value := 1.0
	if m.Observable == gates.ObsPauliZ && c.bits[m.Wires[0]] {
		value = -1
	}

	c.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     c.runID,
		Device:    ShortName,
		Category:  log.CategoryMeasure,
		Measure: &log.MeasureEvent{
			Observable: m.Observable.String(),
			Wires:      append([]int(nil), m.Wires...),
			Value:      value,
		},
	})
	return value, nil
}

// Variance returns 1 - Expval^2, which is always 0 on a classical
// register.
func (c *Classical) Variance(ctx context.Context, m gates.Measurement) (float64, error) {
	e, err := c.Expval(ctx, m)
	if err != nil {
		return 0, err
	}
	return 1 - e*e, nil
}

// Probabilities returns the single occupied basis state.
func (c *Classical) Probabilities(ctx context.Context) (map[string]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	b.Grow(c.wires)
	for _, bit := range c.bits {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return map[string]float64{b.String(): 1}, nil
}

// Reset clears the register to all zeros and starts a new run.
func (c *Classical) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bits = make([]bool, c.wires)
	c.firstOperation = true
	c.runID = uuid.NewString()

	c.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     c.runID,
		Device:    ShortName,
		Category:  log.CategoryState,
		Wires:     c.wires,
		State:     &log.StateEvent{OldState: "allocated", NewState: "reset"},
	})
	return nil
}

// Close releases nothing for the classical simulator.
func (c *Classical) Close() error { return nil }

func (c *Classical) logError(err error, context string) {
	c.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     c.runID,
		Device:    ShortName,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Message: err.Error(), Context: context},
	})
}

// Compile-time interface satisfaction check.
var _ device.Device = (*Classical)(nil)
