package circuit

import (
	"context"
	"fmt"

	"github.com/projectq-plugins/projectq-go/pkg/device"
)

// Validate checks the circuit against a device: register width, and
// that every gate and observable is in the device's supported sets.
func (c *Circuit) Validate(dev device.Device) error {
	if c.Wires > dev.Wires() {
		return fmt.Errorf("circuit needs %d wires but %s has %d",
			c.Wires, dev.ShortName(), dev.Wires())
	}

	ops, err := c.Ops()
	if err != nil {
		return err
	}
	for _, op := range ops {
		if !dev.SupportsOperation(op.Gate) {
			return fmt.Errorf("%w: %s on %s",
				device.ErrUnsupportedOperation, op.Gate, dev.ShortName())
		}
	}

	ms, err := c.MeasurementSet()
	if err != nil {
		return err
	}
	for _, m := range ms {
		if !dev.SupportsObservable(m.Observable) {
			return fmt.Errorf("%w: %s on %s",
				device.ErrUnsupportedObservable, m.Observable, dev.ShortName())
		}
	}
	return nil
}

// Run executes the circuit on a device and returns one expectation
// value per declared measurement, in declaration order.
//
// The device is Reset first, so Run can be called repeatedly with the
// same device. Devices that need the full measurement set before the
// first expectation value (hardware backends) receive it via
// PreMeasure.
func Run(ctx context.Context, dev device.Device, c *Circuit) ([]float64, error) {
	if err := c.Validate(dev); err != nil {
		return nil, err
	}

	if err := dev.Reset(); err != nil {
		return nil, fmt.Errorf("resetting %s: %w", dev.ShortName(), err)
	}

	ops, err := c.Ops()
	if err != nil {
		return nil, err
	}
	for _, op := range ops {
		if err := dev.Apply(op); err != nil {
			return nil, err
		}
	}

	ms, err := c.MeasurementSet()
	if err != nil {
		return nil, err
	}
	if preparer, ok := dev.(device.MeasurementPreparer); ok {
		if err := preparer.PreMeasure(ctx, ms); err != nil {
			return nil, err
		}
	}

	values := make([]float64, len(ms))
	for i, m := range ms {
		v, err := dev.Expval(ctx, m)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
