package reboot

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// statusSource reports whether an instance passes its status checks.
type statusSource interface {
	StatusOK(ctx context.Context, instanceID string) (bool, error)
}

// Waiter polls an instance until it passes its status checks or the
// timeout elapses.
type Waiter struct {
	logger   zerolog.Logger
	source   statusSource
	interval time.Duration
	timeout  time.Duration
}

// NewWaiter creates a Waiter polling every interval for up to timeout.
func NewWaiter(logger zerolog.Logger, source statusSource, interval, timeout time.Duration) *Waiter {
	return &Waiter{
		logger:   logger,
		source:   source,
		interval: interval,
		timeout:  timeout,
	}
}

// Wait blocks until the instance reports healthy. It checks immediately,
// then once per interval.
func (w *Waiter) Wait(ctx context.Context, instanceID string) error {
	w.logger.Info().Msgf("Waiting up to %s for instance %s to pass status checks, checking every %s",
		w.timeout, instanceID, w.interval)

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		ok, err := w.source.StatusOK(ctx, instanceID)
		if err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return NewWaitTimeoutError(instanceID, w.timeout)
			}
			return err
		}
		if ok {
			w.logger.Info().Msgf("Instance %s passed all status checks", instanceID)
			return nil
		}
		w.logger.Debug().Msgf("Instance %s not healthy yet", instanceID)

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return NewWaitTimeoutError(instanceID, w.timeout)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
