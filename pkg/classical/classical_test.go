package classical

import (
	"context"
	"errors"
	"testing"

	"github.com/projectq-plugins/projectq-go/pkg/device"
	"github.com/projectq-plugins/projectq-go/pkg/gates"
)

func TestClassicalIdentity(t *testing.T) {
	c, err := New(device.WithWires(4))
	if err != nil {
		t.Fatal(err)
	}
	if c.ShortName() != ShortName {
		t.Errorf("ShortName() = %q", c.ShortName())
	}
	if c.Wires() != 4 {
		t.Errorf("Wires() = %d, want 4", c.Wires())
	}
	if c.Shots() != 0 {
		t.Errorf("Shots() = %d, want 0", c.Shots())
	}
}

func TestClassicalSupportedSets(t *testing.T) {
	c, _ := New()

	for _, g := range []gates.Gate{gates.PauliX, gates.CNOT, gates.BasisState} {
		if !c.SupportsOperation(g) {
			t.Errorf("SupportsOperation(%s) = false", g)
		}
	}
	for _, g := range []gates.Gate{gates.Hadamard, gates.RX, gates.SWAP, gates.QubitUnitary} {
		if c.SupportsOperation(g) {
			t.Errorf("SupportsOperation(%s) = true, want false", g)
		}
	}

	if !c.SupportsObservable(gates.ObsPauliZ) || !c.SupportsObservable(gates.ObsIdentity) {
		t.Error("PauliZ and Identity should be supported")
	}
	if c.SupportsObservable(gates.ObsPauliX) {
		t.Error("PauliX observable should not be supported")
	}
}

func TestClassicalApply(t *testing.T) {
	ctx := context.Background()

	t.Run("X flips a bit", func(t *testing.T) {
		c, _ := New(device.WithWires(2))
		if err := c.Apply(gates.Op{Gate: gates.PauliX, Wires: []int{1}}); err != nil {
			t.Fatal(err)
		}
		e, err := c.Expval(ctx, gates.Measurement{Observable: gates.ObsPauliZ, Wires: []int{1}})
		if err != nil {
			t.Fatal(err)
		}
		if e != -1 {
			t.Errorf("<Z> = %v, want -1", e)
		}
	})

	t.Run("CNOT conditional flip", func(t *testing.T) {
		c, _ := New(device.WithWires(2))
		// Control clear: target unchanged.
		if err := c.Apply(gates.Op{Gate: gates.CNOT, Wires: []int{0, 1}}); err != nil {
			t.Fatal(err)
		}
		e, _ := c.Expval(ctx, gates.Measurement{Observable: gates.ObsPauliZ, Wires: []int{1}})
		if e != 1 {
			t.Errorf("<Z> on target = %v, want 1", e)
		}

		// Control set: target flips.
		if err := c.Apply(gates.Op{Gate: gates.PauliX, Wires: []int{0}}); err != nil {
			t.Fatal(err)
		}
		if err := c.Apply(gates.Op{Gate: gates.CNOT, Wires: []int{0, 1}}); err != nil {
			t.Fatal(err)
		}
		e, _ = c.Expval(ctx, gates.Measurement{Observable: gates.ObsPauliZ, Wires: []int{1}})
		if e != -1 {
			t.Errorf("<Z> on target = %v, want -1", e)
		}
	})

	t.Run("basis state sets bits", func(t *testing.T) {
		c, _ := New(device.WithWires(3))
		op := gates.Op{Gate: gates.BasisState, Wires: []int{0, 1, 2}, Params: []float64{1, 0, 1}}
		if err := c.Apply(op); err != nil {
			t.Fatal(err)
		}
		probs, err := c.Probabilities(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if probs["101"] != 1 {
			t.Errorf("probs = %v, want P(101)=1", probs)
		}
	})

	t.Run("basis state rejected after gate", func(t *testing.T) {
		c, _ := New(device.WithWires(1))
		if err := c.Apply(gates.Op{Gate: gates.PauliX, Wires: []int{0}}); err != nil {
			t.Fatal(err)
		}
		err := c.Apply(gates.Op{Gate: gates.BasisState, Wires: []int{0}, Params: []float64{1}})
		if !errors.Is(err, device.ErrBasisStateAfterGates) {
			t.Errorf("error = %v, want ErrBasisStateAfterGates", err)
		}
	})

	t.Run("unsupported gate", func(t *testing.T) {
		c, _ := New(device.WithWires(1))
		err := c.Apply(gates.Op{Gate: gates.Hadamard, Wires: []int{0}})
		if !errors.Is(err, device.ErrUnsupportedOperation) {
			t.Errorf("error = %v, want ErrUnsupportedOperation", err)
		}
	})
}

func TestClassicalExpval(t *testing.T) {
	ctx := context.Background()
	c, _ := New(device.WithWires(1))

	t.Run("identity", func(t *testing.T) {
		e, err := c.Expval(ctx, gates.Measurement{Observable: gates.ObsIdentity, Wires: []int{0}})
		if err != nil {
			t.Fatal(err)
		}
		if e != 1 {
			t.Errorf("<I> = %v, want 1", e)
		}
	})

	t.Run("unsupported observable", func(t *testing.T) {
		_, err := c.Expval(ctx, gates.Measurement{Observable: gates.ObsPauliX, Wires: []int{0}})
		if !errors.Is(err, device.ErrUnsupportedObservable) {
			t.Errorf("error = %v, want ErrUnsupportedObservable", err)
		}
	})
}

func TestClassicalVariance(t *testing.T) {
	ctx := context.Background()
	c, _ := New(device.WithWires(1))
	v, err := c.Variance(ctx, gates.Measurement{Observable: gates.ObsPauliZ, Wires: []int{0}})
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 {
		t.Errorf("Var(Z) = %v, want 0", v)
	}
}

func TestClassicalReset(t *testing.T) {
	ctx := context.Background()
	c, _ := New(device.WithWires(2))
	if err := c.Apply(gates.Op{Gate: gates.PauliX, Wires: []int{0}}); err != nil {
		t.Fatal(err)
	}
	if err := c.Reset(); err != nil {
		t.Fatal(err)
	}
	probs, err := c.Probabilities(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if probs["00"] != 1 {
		t.Errorf("probs after Reset = %v, want P(00)=1", probs)
	}
}

func TestClassicalRegistered(t *testing.T) {
	d, err := device.New(ShortName, device.WithWires(2))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.(*Classical); !ok {
		t.Errorf("registry returned %T, want *Classical", d)
	}
}
