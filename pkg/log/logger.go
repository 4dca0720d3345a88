package log

// Logger receives execution events from devices. Implementations must
// tolerate concurrent calls and should return quickly; a slow sink
// stalls the gate queue of the device emitting the events.
type Logger interface {
	Log(event Event)
}

// NoopLogger drops every event. It is the default sink when no logger
// is configured, so devices never have to nil-check.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// MultiLogger fans one event stream out to several sinks, for example
// a FileLogger for later inspection plus a SlogAdapter for the console.
type MultiLogger struct {
	sinks []Logger
}

// NewMultiLogger builds a MultiLogger over the given sinks. Order is
// preserved: each event is delivered to the sinks in argument order.
func NewMultiLogger(sinks ...Logger) *MultiLogger {
	return &MultiLogger{sinks: sinks}
}

// Log delivers the event to every sink.
func (m *MultiLogger) Log(event Event) {
	for _, s := range m.sinks {
		s.Log(event)
	}
}

var (
	_ Logger = NoopLogger{}
	_ Logger = (*MultiLogger)(nil)
)
