// Package log provides structured execution logging for devices.
//
// Devices emit an Event for every gate application, measurement, and
// hardware job transition. Events carry a run identifier and the device
// short name, so a single log can interleave several device instances
// and still be filtered per run.
//
// The Logger interface decouples devices from log destinations:
//
//   - NoopLogger discards everything (the default).
//   - FileLogger appends CBOR-encoded events to a file.
//   - SlogAdapter forwards events to a log/slog logger for console use.
//   - MultiLogger fans out to several of the above.
//
// Reader streams events back out of a CBOR log file, with optional
// filtering; the pq-log tool is built on it.
package log
