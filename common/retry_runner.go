package common

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/NilFoundation/energyctl/common/logging"
	"github.com/rs/zerolog"
)

// ErrRetryable marks an error the runner is allowed to retry on.
var ErrRetryable = errors.New("retryable")

type RetryConfig struct {
	ShouldRetry func(attemptNumber uint32, err error) bool
	NextDelay   func(attemptNumber uint32) time.Duration
}

type RetryRunner struct {
	config RetryConfig
	logger zerolog.Logger
}

func NewRetryRunner(config RetryConfig, logger zerolog.Logger) RetryRunner {
	return RetryRunner{
		config: config,
		logger: logger,
	}
}

func (r *RetryRunner) Do(ctx context.Context, action func(ctx context.Context) error) error {
	attemptNumber := uint32(0)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			attemptNumber++
			err := action(ctx)

			if err == nil || !r.config.ShouldRetry(attemptNumber, err) {
				return err
			}

			delay := r.config.NextDelay(attemptNumber)
			r.logger.Debug().Err(err).Uint32(logging.FieldAttempt, attemptNumber).Msgf("retrying in %s", delay)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
}

func LimitRetries(maxRetries uint32) func(attemptNumber uint32, err error) bool {
	return func(attemptNumber uint32, _ error) bool {
		return attemptNumber < maxRetries
	}
}

// RetryOnlyMarked retries errors wrapping ErrRetryable, up to maxRetries attempts.
func RetryOnlyMarked(maxRetries uint32) func(attemptNumber uint32, err error) bool {
	limit := LimitRetries(maxRetries)
	return func(attemptNumber uint32, err error) bool {
		return errors.Is(err, ErrRetryable) && limit(attemptNumber, err)
	}
}

func ExponentialDelay(baseDelay, maxDelay time.Duration) func(attemptNumber uint32) time.Duration {
	if baseDelay > maxDelay {
		log.Panicf("baseDelay %s > maxDelay %s", baseDelay, maxDelay)
	}

	return func(attemptNumber uint32) time.Duration {
		result := baseDelay
		for range attemptNumber - 1 {
			result *= 2
			if result >= maxDelay {
				result = maxDelay
				break
			}
		}
		return result
	}
}

func ConstantDelay(delay time.Duration) func(attemptNumber uint32) time.Duration {
	return func(uint32) time.Duration {
		return delay
	}
}
