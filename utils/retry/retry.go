package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FrenchMajesty/turbo-translate/utils/logger"
)

// ErrRetriesExhausted is matched by the error Execute returns when every retry
// failed with a recoverable error.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Config holds the backoff parameters of a single Execute call.
type Config struct {
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration // zero disables the cap
	BackoffMultiple float64
}

// DefaultConfig returns 6 retries starting at 500ms and doubling each time.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      6,
		BaseDelay:       500 * time.Millisecond,
		MaxDelay:        0,
		BackoffMultiple: 2.0,
	}
}

// Options configures Execute.
type Options struct {
	Config Config

	// ErrorChecker reports whether err is recoverable. A nil checker retries nothing.
	ErrorChecker func(err error) bool

	// APIName is used in log lines.
	APIName string
	Logger  logger.Logger

	// OnRetry is called for every recoverable failure that will be retried.
	OnRetry func(attempt int, err error, delay time.Duration)

	// OnExhausting fires once per call, right before the final retry.
	OnExhausting func()

	// Sleep waits between attempts. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// ExhaustedError is returned when the last allowed retry failed with a
// recoverable error.
type ExhaustedError struct {
	APIName  string
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: %v after %d attempts: %v", e.APIName, ErrRetriesExhausted, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrRetriesExhausted
}

// Execute runs fn until it succeeds, fails with an error the checker does not
// accept, or runs out of retries.
func Execute[T any](ctx context.Context, opts Options, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T

	log := opts.Logger
	if log == nil {
		log = logger.NewNoopLogger()
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	multiple := opts.Config.BackoffMultiple
	if multiple <= 0 {
		multiple = 2.0
	}

	retriesLeft := opts.Config.MaxRetries
	delay := opts.Config.BaseDelay

	for attempt := 0; ; attempt++ {
		result, err := fn(ctx, attempt)
		if err == nil {
			if attempt > 0 {
				log.Printf("%s succeeded on attempt %d", opts.APIName, attempt+1)
			}
			return result, nil
		}

		if opts.ErrorChecker == nil || !opts.ErrorChecker(err) {
			return zero, err
		}

		if retriesLeft <= 0 {
			log.Printf("%s failed after %d attempts, last error: %v", opts.APIName, attempt+1, err)
			return zero, &ExhaustedError{APIName: opts.APIName, Attempts: attempt + 1, Err: err}
		}

		if opts.Config.MaxDelay > 0 && delay > opts.Config.MaxDelay {
			delay = opts.Config.MaxDelay
		}

		log.Printf("%s throttled (attempt %d, %d retries left), retrying in %v: %v",
			opts.APIName, attempt+1, retriesLeft, delay, err)
		if opts.OnRetry != nil {
			opts.OnRetry(attempt, err, delay)
		}
		if retriesLeft == 1 && opts.OnExhausting != nil {
			opts.OnExhausting()
		}

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}

		retriesLeft--
		delay = time.Duration(float64(delay) * multiple)
	}
}

// Do is Execute for operations without a result.
func Do(ctx context.Context, opts Options, fn func(ctx context.Context, attempt int) error) error {
	_, err := Execute(ctx, opts, func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, fn(ctx, attempt)
	})
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
