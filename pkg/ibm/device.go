package ibm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/projectq-plugins/projectq-go/pkg/device"
	"github.com/projectq-plugins/projectq-go/pkg/gates"
	"github.com/projectq-plugins/projectq-go/pkg/log"
	"github.com/projectq-plugins/projectq-go/pkg/persistence"
	"github.com/projectq-plugins/projectq-go/pkg/qasm"
)

// ShortName is the registry identifier of the hardware-backed device.
const ShortName = "projectq.ibm"

// deviceName is the human-readable device name.
const deviceName = "ProjectQ IBMBackend device"

func init() {
	device.Register(ShortName, func(o *device.Options) (device.Device, error) {
		return newFromOptions(o)
	})
}

// supportedOperations excludes QubitUnitary and SqrtSwap: neither has a
// decomposition in the hardware gate set the serializer targets.
var supportedOperations = []gates.Gate{
	gates.PauliX, gates.PauliY, gates.PauliZ, gates.Hadamard,
	gates.S, gates.T, gates.SqrtX,
	gates.CNOT, gates.CZ, gates.SWAP,
	gates.RX, gates.RY, gates.RZ, gates.PhaseShift, gates.Rot,
	gates.BasisState,
}

// supportedObservables. Only PauliZ is measured natively; the others
// are rotated into the Z basis before the final measurement and may be
// slightly noisier.
var supportedObservables = []gates.Observable{
	gates.ObsPauliX, gates.ObsPauliY, gates.ObsPauliZ,
	gates.ObsHadamard, gates.ObsIdentity,
}

// Device executes circuits on the hosted quantum service.
//
// Operations are queued locally and serialized to OpenQASM when the
// measurement set is known; one job measures every wire in the
// computational basis.
type Device struct {
	mu sync.Mutex

	wires   int
	shots   int
	backend string

	client   *Client
	store    *persistence.JobStore
	retrieve string

	queue          []gates.Op
	firstOperation bool

	// prepared is set once the job has run and probs holds the
	// normalized histogram.
	prepared bool
	probs    map[string]float64

	logger log.Logger
	runID  string
}

// New constructs a hardware-backed device.
func New(opts ...device.Option) (*Device, error) {
	dev, err := device.New(ShortName, opts...)
	if err != nil {
		return nil, err
	}
	return dev.(*Device), nil
}

func newFromOptions(o *device.Options) (*Device, error) {
	if o.User == "" {
		return nil, fmt.Errorf("%w: a hardware service user name is required (user)", device.ErrMissingCredentials)
	}
	if o.Password == "" {
		return nil, fmt.Errorf("%w: a hardware service password is required (password)", device.ErrMissingCredentials)
	}

	shots := o.EffectiveShots(DefaultShots)
	if shots < 1 {
		return nil, fmt.Errorf("hardware devices need at least one shot, got %d", shots)
	}

	backend := HostedSimulatorBackend
	if o.Hardware {
		backend = o.HardwareBackend
	}

	clientOpts := []ClientOption{WithClientLogger(o.Logger)}
	if o.APIBaseURL != "" {
		clientOpts = append(clientOpts, WithBaseURL(o.APIBaseURL))
	}

	d := &Device{
		wires:    o.Wires,
		shots:    shots,
		backend:  backend,
		client:   NewClient(Credentials{User: o.User, Password: o.Password}, clientOpts...),
		retrieve: o.RetrieveExecution,
		logger:   o.Logger,
	}
	if o.JobStorePath != "" {
		d.store = persistence.NewJobStore(o.JobStorePath)
	}
	if err := d.Reset(); err != nil {
		return nil, err
	}
	return d, nil
}

// Name returns the human-readable device name.
func (d *Device) Name() string { return deviceName }

// ShortName returns the registry identifier.
func (d *Device) ShortName() string { return ShortName }

// Wires returns the number of qubits.
func (d *Device) Wires() int { return d.wires }

// Shots returns the number of runs used to estimate expectation values.
func (d *Device) Shots() int { return d.shots }

// Backend returns the service backend the device targets.
func (d *Device) Backend() string { return d.backend }

// Operations returns the supported gate set.
func (d *Device) Operations() []gates.Gate {
	return append([]gates.Gate(nil), supportedOperations...)
}

// Observables returns the supported observables.
func (d *Device) Observables() []gates.Observable {
	return append([]gates.Observable(nil), supportedObservables...)
}

// SupportsOperation reports whether the device accepts the gate.
func (d *Device) SupportsOperation(g gates.Gate) bool {
	for _, s := range supportedOperations {
		if s == g {
			return true
		}
	}
	return false
}

// SupportsObservable reports whether the device accepts the observable.
func (d *Device) SupportsObservable(o gates.Observable) bool {
	for _, s := range supportedObservables {
		if s == o {
			return true
		}
	}
	return false
}

// Apply validates and queues one operation. Nothing is sent to the
// service until the measurement set is known.
func (d *Device) Apply(op gates.Op) error {
	if err := device.CheckOperation(d, op); err != nil {
		d.logError(err, "apply")
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if op.Gate == gates.BasisState && !d.firstOperation {
		err := fmt.Errorf("%w: %s on %s", device.ErrBasisStateAfterGates, op.Gate, ShortName)
		d.logError(err, "apply")
		return err
	}
	d.firstOperation = false

	d.queue = append(d.queue, op)

	d.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     d.runID,
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

// PreMeasure rotates the requested observables into the computational
// basis, serializes the program, and runs (or retrieves) the job.
func (d *Device) PreMeasure(ctx context.Context, ms []gates.Measurement) error {
	for _, m := range ms {
		if err := device.CheckMeasurement(d, m); err != nil {
			return err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.prepareLocked(ctx, ms)
}

// prepareLocked runs the queued program with basis changes for ms.
// Callers hold d.mu.
func (d *Device) prepareLocked(ctx context.Context, ms []gates.Measurement) error {
	if d.prepared {
		return nil
	}

	ops := append([]gates.Op(nil), d.queue...)
	for _, m := range ms {
		diag, err := gates.DiagonalizingOps(m.Observable, m.Wires[0])
		if err != nil {
			return err
		}
		ops = append(ops, diag...)
	}

	program, err := qasm.Serialize(d.wires, ops, true)
	if err != nil {
		d.logError(err, "serialize")
		return err
	}

	job, err := d.runJob(ctx, program)
	if err != nil {
		d.logError(err, "run")
		return err
	}

	probs := job.Probabilities()
	if probs == nil {
		return fmt.Errorf("%w: job %s returned no counts", ErrJobFailed, job.ID)
	}
	for bits := range probs {
		// A key of the wrong width would silently corrupt the wire
		// marginals, so reject the histogram outright.
		if len(bits) != d.wires {
			return fmt.Errorf("%w: job %s histogram key %q does not match register width %d",
				ErrJobFailed, job.ID, bits, d.wires)
		}
	}
	d.probs = probs
	d.prepared = true
	return nil
}

// runJob executes or retrieves one job and records it in the job store.
func (d *Device) runJob(ctx context.Context, program string) (*Job, error) {
	if d.retrieve != "" {
		return d.retrieveJob(ctx)
	}

	job, err := d.client.Run(ctx, d.backend, program, d.shots)
	if err != nil {
		return nil, err
	}

	if d.store != nil {
		// Store failures must not lose the result we just paid for.
		_ = d.store.Put(persistence.JobRecord{
			JobID:       job.ID,
			Backend:     job.Backend,
			QASM:        job.QASM,
			Shots:       job.Shots,
			Counts:      job.Counts,
			SubmittedAt: job.SubmittedAt,
			CompletedAt: time.Now(),
		})
	}
	return job, nil
}

// retrieveJob recovers a previous job, preferring the local store over
// the service.
func (d *Device) retrieveJob(ctx context.Context) (*Job, error) {
	if d.store != nil {
		if rec, err := d.store.Get(d.retrieve); err == nil {
			return &Job{
				ID:      rec.JobID,
				Backend: rec.Backend,
				QASM:    rec.QASM,
				Shots:   rec.Shots,
				Status:  StatusCompleted,
				Counts:  rec.Counts,
			}, nil
		}
	}
	return d.client.Await(ctx, d.retrieve)
}

// Expval returns the expectation value estimated from the measured
// histogram. PauliZ and Identity can run the job on demand; any other
// observable requires the measurement set up front via PreMeasure, so
// its basis change is compiled into the program.
func (d *Device) Expval(ctx context.Context, m gates.Measurement) (float64, error) {
	if err := device.CheckMeasurement(d, m); err != nil {
		d.logError(err, "expval")
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.prepared {
		if m.Observable != gates.ObsPauliZ && m.Observable != gates.ObsIdentity {
			err := fmt.Errorf("%w: %s must be declared via PreMeasure so its basis change runs before measurement",
				device.ErrMeasurementPreparation, m.Observable)
			d.logError(err, "expval")
			return 0, err
		}
		if err := d.prepareLocked(ctx, nil); err != nil {
			return 0, err
		}
	}

	var value float64
	if m.Observable == gates.ObsIdentity {
		for _, p := range d.probs {
			value += p
		}
	} else {
		wire := m.Wires[0]
		var p0, p1 float64
		for bits, p := range d.probs {
			if bits[wire] == '1' {
				p1 += p
			} else {
				p0 += p
			}
		}
		value = p0 - p1
	}

	d.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     d.runID,
		Device:    ShortName,
		Category:  log.CategoryMeasure,
		Measure: &log.MeasureEvent{
			Observable: m.Observable.String(),
			Wires:      append([]int(nil), m.Wires...),
			Value:      value,
			Shots:      d.shots,
		},
	})
	return value, nil
}

// Variance returns 1 - Expval^2 for the dichotomic observables.
func (d *Device) Variance(ctx context.Context, m gates.Measurement) (float64, error) {
	e, err := d.Expval(ctx, m)
	if err != nil {
		return 0, err
	}
	return 1 - e*e, nil
}

// Probabilities returns the measured histogram, running the job in the
// computational basis if it has not run yet.
func (d *Device) Probabilities(ctx context.Context) (map[string]float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.prepared {
		if err := d.prepareLocked(ctx, nil); err != nil {
			return nil, err
		}
	}

	out := make(map[string]float64, len(d.probs))
	for bits, p := range d.probs {
		out[bits] = p
	}
	return out, nil
}

// Reset discards the queued program and any cached result.
func (d *Device) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.queue = nil
	d.firstOperation = true
	d.prepared = false
	d.probs = nil
	d.runID = uuid.NewString()

	d.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     d.runID,
		Device:    ShortName,
		Category:  log.CategoryState,
		Wires:     d.wires,
		State:     &log.StateEvent{OldState: "allocated", NewState: "reset"},
	})
	return nil
}

// Close releases the session.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.client.mu.Lock()
	d.client.token = ""
	d.client.mu.Unlock()
	return nil
}

func (d *Device) logError(err error, context string) {
	d.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     d.runID,
		Device:    ShortName,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Message: err.Error(), Context: context},
	})
}

// Compile-time interface satisfaction checks.
var (
	_ device.Device              = (*Device)(nil)
	_ device.MeasurementPreparer = (*Device)(nil)
)
