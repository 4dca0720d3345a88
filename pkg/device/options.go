package device

import (
	"fmt"

	"github.com/projectq-plugins/projectq-go/pkg/log"
)

// DefaultHardwareBackend is the hardware chip used when none is named.
const DefaultHardwareBackend = "ibmqx4"

// Options carries the construction parameters for all device kinds.
// Each backend validates the subset it understands and ignores the rest.
type Options struct {
	// Wires is the number of qubits. Default 1.
	Wires int

	// Shots is the number of samples used to estimate expectation
	// values. Zero means exact values. Hardware devices default to 1024
	// when neither Shots nor NumRuns is given.
	Shots int

	// shotsSet records whether Shots was given explicitly, so hardware
	// devices can apply their own default.
	shotsSet bool

	// NumRuns, when positive, overrides Shots. Kept for parity with the
	// wrapped backend's num_runs argument.
	NumRuns int

	// Seed, when non-nil, seeds simulator sampling deterministically.
	Seed *int64

	// GateFusion enables operation caching in the simulator backend.
	GateFusion bool

	// Verbose makes devices attach more context to errors and log more.
	Verbose bool

	// User and Password are the hardware service credentials.
	User     string
	Password string

	// Hardware selects the real chip instead of the hosted simulator.
	Hardware bool

	// HardwareBackend names the chip, e.g. "ibmqx4" or "ibmqx5".
	HardwareBackend string

	// RetrieveExecution, when set, fetches the result of a previous job
	// instead of submitting a new one.
	RetrieveExecution string

	// APIBaseURL overrides the hardware service endpoint. Tests point
	// this at a local server.
	APIBaseURL string

	// JobStorePath, when set, records completed hardware jobs in a JSON
	// file so timed-out runs can be retrieved later.
	JobStorePath string

	// Logger receives execution events. Nil disables logging.
	Logger log.Logger
}

// Option mutates Options during construction.
type Option func(*Options)

// newOptions applies opts over the defaults.
func newOptions(opts []Option) *Options {
	o := &Options{
		Wires:           1,
		HardwareBackend: DefaultHardwareBackend,
		Logger:          log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.NumRuns > 0 {
		o.Shots = o.NumRuns
		o.shotsSet = true
	}
	if o.Logger == nil {
		o.Logger = log.NoopLogger{}
	}
	return o
}

// Validate checks the option invariants common to all devices.
func (o *Options) Validate() error {
	if o.Wires < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWireCount, o.Wires)
	}
	if o.Shots < 0 {
		return fmt.Errorf("shots must be non-negative, got %d", o.Shots)
	}
	return nil
}

// EffectiveShots returns the shot count, substituting def when shots
// were never set explicitly. Hardware devices pass their 1024 default.
func (o *Options) EffectiveShots(def int) int {
	if !o.shotsSet {
		return def
	}
	return o.Shots
}

// WithWires sets the number of qubits.
func WithWires(n int) Option {
	return func(o *Options) { o.Wires = n }
}

// WithShots sets the number of samples used to estimate expectation
// values. Zero requests exact values.
func WithShots(n int) Option {
	return func(o *Options) {
		o.Shots = n
		o.shotsSet = true
	}
}

// WithNumRuns sets the hardware run count. It takes precedence over
// WithShots, matching the wrapped backend's num_runs argument.
func WithNumRuns(n int) Option {
	return func(o *Options) { o.NumRuns = n }
}

// WithSeed seeds simulator sampling deterministically.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = &seed }
}

// WithGateFusion enables operation caching in the simulator backend.
func WithGateFusion() Option {
	return func(o *Options) { o.GateFusion = true }
}

// WithVerbose enables verbose errors and logging.
func WithVerbose() Option {
	return func(o *Options) { o.Verbose = true }
}

// WithCredentials sets the hardware service user name and password.
func WithCredentials(user, password string) Option {
	return func(o *Options) {
		o.User = user
		o.Password = password
	}
}

// WithHardware runs on the real chip instead of the hosted simulator.
func WithHardware() Option {
	return func(o *Options) { o.Hardware = true }
}

// WithHardwareBackend names the hardware chip to use.
func WithHardwareBackend(name string) Option {
	return func(o *Options) { o.HardwareBackend = name }
}

// WithRetrieveExecution fetches the result of a previous job instead of
// submitting a new one.
func WithRetrieveExecution(jobID string) Option {
	return func(o *Options) { o.RetrieveExecution = jobID }
}

// WithAPIBaseURL overrides the hardware service endpoint.
func WithAPIBaseURL(url string) Option {
	return func(o *Options) { o.APIBaseURL = url }
}

// WithJobStore records completed hardware jobs in the JSON file at path.
func WithJobStore(path string) Option {
	return func(o *Options) { o.JobStorePath = path }
}

// WithLogger attaches an execution event logger.
func WithLogger(l log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
