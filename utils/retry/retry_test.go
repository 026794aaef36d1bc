package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errThrottled = errors.New("429 too many requests")

// recordingSleeper collects requested delays instead of sleeping
type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func newTestOptions(maxRetries int, sleeper *recordingSleeper) Options {
	return Options{
		Config: Config{
			MaxRetries:      maxRetries,
			BaseDelay:       500 * time.Millisecond,
			BackoffMultiple: 2.0,
		},
		ErrorChecker: func(err error) bool { return errors.Is(err, errThrottled) },
		APIName:      "Test",
		Sleep:        sleeper.Sleep,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 6, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.BaseDelay)
	assert.Equal(t, time.Duration(0), cfg.MaxDelay)
	assert.Equal(t, 2.0, cfg.BackoffMultiple)
}

func TestExecute_SucceedsAfterKFailures(t *testing.T) {
	for _, k := range []int{0, 1, 3, 5} {
		sleeper := &recordingSleeper{}
		calls := 0

		result, err := Execute(context.Background(), newTestOptions(6, sleeper), func(ctx context.Context, attempt int) (string, error) {
			assert.Equal(t, calls, attempt, "attempt index should match call count")
			calls++
			if calls <= k {
				return "", errThrottled
			}
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, k+1, calls, "should call k+1 times for k=%d", k)
		require.Len(t, sleeper.delays, k)
		for i, d := range sleeper.delays {
			assert.Equal(t, 500*time.Millisecond*time.Duration(1<<i), d, "delay %d for k=%d", i, k)
		}
	}
}

func TestExecute_ExhaustedFiresCallbackOnce(t *testing.T) {
	sleeper := &recordingSleeper{}
	opts := newTestOptions(6, sleeper)

	callbackCalls := 0
	callsBeforeCallback := 0
	calls := 0
	opts.OnExhausting = func() {
		callbackCalls++
		callsBeforeCallback = calls
	}

	_, err := Execute(context.Background(), opts, func(ctx context.Context, attempt int) (int, error) {
		calls++
		return 0, errThrottled
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.ErrorIs(t, err, errThrottled, "exhausted error should unwrap to the last failure")

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 7, exhausted.Attempts)

	assert.Equal(t, 7, calls, "initial attempt plus 6 retries")
	assert.Equal(t, 1, callbackCalls, "callback should fire exactly once")
	assert.Equal(t, 6, callsBeforeCallback, "callback fires after the 6th failure, before the last retry")
	assert.Len(t, sleeper.delays, 6)
	assert.Equal(t, 16*time.Second, sleeper.delays[5])
}

func TestExecute_NonRetryableErrorPropagatesImmediately(t *testing.T) {
	sleeper := &recordingSleeper{}
	opts := newTestOptions(6, sleeper)
	opts.OnExhausting = func() { t.Fatal("callback must not fire") }

	boom := errors.New("boom")
	calls := 0
	_, err := Execute(context.Background(), opts, func(ctx context.Context, attempt int) (string, error) {
		calls++
		return "", boom
	})

	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleeper.delays)
}

func TestExecute_ZeroRetries(t *testing.T) {
	sleeper := &recordingSleeper{}
	opts := newTestOptions(0, sleeper)
	fired := false
	opts.OnExhausting = func() { fired = true }

	_, err := Execute(context.Background(), opts, func(ctx context.Context, attempt int) (string, error) {
		return "", errThrottled
	})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.False(t, fired, "no retry opportunity means no callback")
	assert.Empty(t, sleeper.delays)
}

func TestExecute_NilCheckerNeverRetries(t *testing.T) {
	sleeper := &recordingSleeper{}
	opts := newTestOptions(3, sleeper)
	opts.ErrorChecker = nil

	calls := 0
	_, err := Execute(context.Background(), opts, func(ctx context.Context, attempt int) (string, error) {
		calls++
		return "", errThrottled
	})

	assert.ErrorIs(t, err, errThrottled)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 1, calls)
}

func TestExecute_MaxDelayCapsBackoff(t *testing.T) {
	sleeper := &recordingSleeper{}
	opts := newTestOptions(4, sleeper)
	opts.Config.MaxDelay = time.Second

	_, _ = Execute(context.Background(), opts, func(ctx context.Context, attempt int) (string, error) {
		return "", errThrottled
	})

	assert.Equal(t, []time.Duration{
		500 * time.Millisecond,
		time.Second,
		time.Second,
		time.Second,
	}, sleeper.delays)
}

func TestExecute_OnRetryReportsEachFailure(t *testing.T) {
	sleeper := &recordingSleeper{}
	opts := newTestOptions(2, sleeper)

	var attempts []int
	opts.OnRetry = func(attempt int, err error, delay time.Duration) {
		assert.ErrorIs(t, err, errThrottled)
		attempts = append(attempts, attempt)
	}

	_, _ = Execute(context.Background(), opts, func(ctx context.Context, attempt int) (string, error) {
		return "", errThrottled
	})

	assert.Equal(t, []int{0, 1}, attempts)
}

func TestExecute_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := Options{
		Config:       Config{MaxRetries: 3, BaseDelay: time.Hour, BackoffMultiple: 2},
		ErrorChecker: func(err error) bool { return true },
	}

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := Execute(ctx, opts, func(ctx context.Context, attempt int) (string, error) {
		calls++
		return "", errThrottled
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDo_UnitVariant(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0

	err := Do(context.Background(), newTestOptions(6, sleeper), func(ctx context.Context, attempt int) error {
		calls++
		if calls < 3 {
			return errThrottled
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, time.Second}, sleeper.delays)
}
