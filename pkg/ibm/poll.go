package ibm

import (
	"context"
	"time"
)

// PollPolicy controls how job completion is awaited.
type PollPolicy struct {
	// MaxAttempts bounds the number of status fetches.
	MaxAttempts int

	// InitialWait is the delay before the first re-fetch.
	InitialWait time.Duration

	// MaxWait caps the exponential backoff between fetches.
	MaxWait time.Duration
}

// DefaultPollPolicy waits up to roughly half an hour for a queued chip.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		MaxAttempts: 60,
		InitialWait: 1 * time.Second,
		MaxWait:     30 * time.Second,
	}
}

// Await calls fetch until it reports done, the attempts are exhausted,
// or the context is cancelled. The wait between attempts doubles from
// InitialWait up to MaxWait.
func (p PollPolicy) Await(ctx context.Context, fetch func() (done bool, err error)) error {
	wait := p.InitialWait

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		done, err := fetch()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		wait *= 2
		if wait > p.MaxWait {
			wait = p.MaxWait
		}
	}

	return ErrPollTimeout
}
