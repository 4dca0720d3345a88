package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/projectq-plugins/projectq-go/pkg/device"
	"github.com/projectq-plugins/projectq-go/pkg/gates"
	"github.com/projectq-plugins/projectq-go/pkg/log"
)

// ShortName is the registry identifier of the state-vector simulator.
const ShortName = "projectq.simulator"

// deviceName is the human-readable device name.
const deviceName = "ProjectQ Simulator device"

func init() {
	device.Register(ShortName, func(o *device.Options) (device.Device, error) {
		return newFromOptions(o)
	})
}

// supportedOperations is the full gate set.
var supportedOperations = gates.All()

// supportedObservables covers the dichotomic single-qubit observables.
var supportedObservables = []gates.Observable{
	gates.ObsPauliX, gates.ObsPauliY, gates.ObsPauliZ,
	gates.ObsHadamard, gates.ObsIdentity,
}

// Simulator is a local state-vector device.
type Simulator struct {
	mu sync.Mutex

	wires int
	shots int

	state []complex128

	// firstOperation gates BasisState: it must precede everything else.
	firstOperation bool

	// pending holds queued operations when gate fusion is enabled; they
	// are applied in one pass at flush time.
	pending    []gates.Op
	gateFusion bool

	rng    *rand.Rand
	logger log.Logger
	runID  string
}

// New constructs a state-vector simulator device.
func New(opts ...device.Option) (*Simulator, error) {
	dev, err := device.New(ShortName, opts...)
	if err != nil {
		return nil, err
	}
	return dev.(*Simulator), nil
}

func newFromOptions(o *device.Options) (*Simulator, error) {
	seed := time.Now().UnixNano()
	if o.Seed != nil {
		seed = *o.Seed
	}

	s := &Simulator{
		wires:      o.Wires,
		shots:      o.EffectiveShots(0),
		gateFusion: o.GateFusion,
		rng:        rand.New(rand.NewSource(seed)),
		logger:     o.Logger,
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the human-readable device name.
func (s *Simulator) Name() string { return deviceName }

// ShortName returns the registry identifier.
func (s *Simulator) ShortName() string { return ShortName }

// Wires returns the number of qubits.
func (s *Simulator) Wires() int { return s.wires }

// Shots returns the sample count; zero means exact expectation values.
func (s *Simulator) Shots() int { return s.shots }

// Operations returns the supported gate set.
func (s *Simulator) Operations() []gates.Gate {
	return append([]gates.Gate(nil), supportedOperations...)
}

// Observables returns the supported observables.
func (s *Simulator) Observables() []gates.Observable {
	return append([]gates.Observable(nil), supportedObservables...)
}

// SupportsOperation reports whether the device accepts the gate.
func (s *Simulator) SupportsOperation(g gates.Gate) bool {
	return g.IsValid()
}

// SupportsObservable reports whether the device accepts the observable.
func (s *Simulator) SupportsObservable(o gates.Observable) bool {
	return o.IsValid()
}

// Apply applies one operation to the register. With gate fusion enabled
// the operation is validated and queued, and executed at flush time.
func (s *Simulator) Apply(op gates.Op) error {
	if err := device.CheckOperation(s, op); err != nil {
		s.logError(err, "apply")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if op.Gate == gates.BasisState && !s.firstOperation {
		err := fmt.Errorf("%w: %s on %s", device.ErrBasisStateAfterGates, op.Gate, ShortName)
		s.logError(err, "apply")
		return err
	}
	s.firstOperation = false

	if s.gateFusion {
		s.pending = append(s.pending, op)
	} else {
		s.applyLocked(op)
	}

	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     s.runID,
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

// applyLocked executes one validated operation on the state vector.
// Callers hold s.mu.
func (s *Simulator) applyLocked(op gates.Op) {
	switch op.Gate {
	case gates.BasisState:
		x, _ := gates.PauliX.Matrix(nil)
		for i, bit := range op.Params {
			if bit == 1 {
				applySingle(s.state, s.wires, op.Wires[i], x)
			}
		}
	case gates.QubitUnitary:
		applySingle(s.state, s.wires, op.Wires[0], op.Unitary)
	default:
		m, err := op.Gate.Matrix(op.Params)
		if err != nil {
			// Validate has already checked parameters; a missing matrix
			// here is a catalogue bug.
			panic(fmt.Sprintf("simulator: no matrix for validated gate %s: %v", op.Gate, err))
		}
		if op.Gate.NumWires() == 2 {
			applyTwo(s.state, s.wires, op.Wires[0], op.Wires[1], m)
		} else {
			applySingle(s.state, s.wires, op.Wires[0], m)
		}
	}
}

// flushLocked drains the pending queue. Callers hold s.mu.
func (s *Simulator) flushLocked() {
	for _, op := range s.pending {
		s.applyLocked(op)
	}
	s.pending = s.pending[:0]
}

// PreMeasure flushes pending operations before expectation values are
// retrieved.
func (s *Simulator) PreMeasure(ctx context.Context, ms []gates.Measurement) error {
	for _, m := range ms {
		if err := device.CheckMeasurement(s, m); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
	return nil
}

// Expval returns the expectation value of an observable. With shots > 0
// the exact value is degraded to a binomial finite-sample estimate.
func (s *Simulator) Expval(ctx context.Context, m gates.Measurement) (float64, error) {
	if err := device.CheckMeasurement(s, m); err != nil {
		s.logError(err, "expval")
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()

	var value float64
	if m.Observable == gates.ObsIdentity {
		value = 1
	} else {
		obs, err := gates.ObservableMatrix(m.Observable)
		if err != nil {
			return 0, err
		}
		value = expectation(s.state, s.wires, m.Wires[0], obs)
		if s.shots > 0 {
			value = sampleExpval(s.rng, value, s.shots)
		}
	}

	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     s.runID,
		Device:    ShortName,
		Category:  log.CategoryMeasure,
		Measure: &log.MeasureEvent{
			Observable: m.Observable.String(),
			Wires:      append([]int(nil), m.Wires...),
			Value:      value,
			Shots:      s.shots,
		},
	})
	return value, nil
}

// Variance returns 1 - Expval^2 for the dichotomic observables.
func (s *Simulator) Variance(ctx context.Context, m gates.Measurement) (float64, error) {
	e, err := s.Expval(ctx, m)
	if err != nil {
		return 0, err
	}
	return 1 - e*e, nil
}

// Probabilities returns the basis-state histogram over all wires.
func (s *Simulator) Probabilities(ctx context.Context) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
	return probabilities(s.state, s.wires), nil
}

// Reset reallocates the register in |0...0> and starts a new run.
func (s *Simulator) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = make([]complex128, 1<<uint(s.wires))
	s.state[0] = 1
	s.firstOperation = true
	s.pending = nil
	s.runID = uuid.NewString()

	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     s.runID,
		Device:    ShortName,
		Category:  log.CategoryState,
		Wires:     s.wires,
		State:     &log.StateEvent{OldState: "allocated", NewState: "reset"},
	})
	return nil
}

// Close releases nothing for the local simulator.
func (s *Simulator) Close() error { return nil }

func (s *Simulator) logError(err error, context string) {
	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     s.runID,
		Device:    ShortName,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Message: err.Error(), Context: context},
	})
}

// Compile-time interface satisfaction checks.
var (
	_ device.Device              = (*Simulator)(nil)
	_ device.MeasurementPreparer = (*Simulator)(nil)
)
