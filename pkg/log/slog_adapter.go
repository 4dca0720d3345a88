package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes execution events to an slog.Logger.
// Useful for development when you want to see device activity in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("device", event.Device),
		slog.String("category", event.Category.String()),
	}

	// Add type-specific attributes
	switch {
	case event.Gate != nil:
		attrs = append(attrs,
			slog.String("gate", event.Gate.Name),
			slog.Any("wires", event.Gate.Wires),
		)
		if len(event.Gate.Params) > 0 {
			attrs = append(attrs, slog.Any("params", event.Gate.Params))
		}
	case event.Measure != nil:
		attrs = append(attrs,
			slog.String("observable", event.Measure.Observable),
			slog.Any("wires", event.Measure.Wires),
			slog.Float64("value", event.Measure.Value),
		)
		if event.Measure.Shots > 0 {
			attrs = append(attrs, slog.Int("shots", event.Measure.Shots))
		}
	case event.Job != nil:
		attrs = append(attrs,
			slog.String("backend", event.Job.Backend),
			slog.String("status", event.Job.Status),
		)
		if event.Job.JobID != "" {
			attrs = append(attrs, slog.String("job_id", event.Job.JobID))
		}
		if event.Job.Shots > 0 {
			attrs = append(attrs, slog.Int("shots", event.Job.Shots))
		}
	case event.State != nil:
		attrs = append(attrs,
			slog.String("old_state", event.State.OldState),
			slog.String("new_state", event.State.NewState),
		)
		if event.State.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.State.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "execution", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
