package services

import (
	"context"

	"github.com/cenkalti/backoff/v4"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/logger"
)

// newBackOffFunc produces the backoff schedule for one retried operation.
// Swappable so tests run without wall-clock delays.
type newBackOffFunc func() backoff.BackOff

// defaultBackOff is exponential with the library defaults.
func defaultBackOff() backoff.BackOff {
	return backoff.NewExponentialBackOff()
}

// retryTransient runs op up to domain.MaxRetryAttempts times, backing off
// between attempts. Only transient remote failures are retried; caller
// errors stop immediately. After exhaustion the original error is returned
// unchanged so the caller sees the true underlying failure, never a
// retry-wrapper error.
func retryTransient(ctx context.Context, newBackOff newBackOffFunc, op func() error) error {
	attempt := 0
	b := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), domain.MaxRetryAttempts-1), ctx)
	return backoff.Retry(func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if !domain.IsTransient(err) {
			return backoff.Permanent(err)
		}
		logger.Warn("Transient remote failure (attempt %d/%d): %v", attempt, domain.MaxRetryAttempts, err)
		return err
	}, b)
}
