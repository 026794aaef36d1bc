package turbo_translate

import (
	"sync/atomic"
	"time"

	"github.com/FrenchMajesty/turbo-translate/utils/retry"
)

// settings holds the values callers may change at any time. Every call to
// TranslateArray takes its own snapshot.
type settings struct {
	retryCount      atomic.Int64
	retryDelay      atomic.Int64 // nanoseconds
	maxDelay        atomic.Int64 // nanoseconds, zero is uncapped
	backoffMultiple float64      // fixed at construction
	throttled       atomic.Pointer[func()]
}

func newSettings(cfg retry.Config) *settings {
	s := &settings{backoffMultiple: cfg.BackoffMultiple}
	s.retryCount.Store(int64(cfg.MaxRetries))
	s.retryDelay.Store(int64(cfg.BaseDelay))
	s.maxDelay.Store(int64(cfg.MaxDelay))
	return s
}

func (s *settings) retryConfig() retry.Config {
	return retry.Config{
		MaxRetries:      int(s.retryCount.Load()),
		BaseDelay:       time.Duration(s.retryDelay.Load()),
		MaxDelay:        time.Duration(s.maxDelay.Load()),
		BackoffMultiple: s.backoffMultiple,
	}
}

func (s *settings) throttledCallback() func() {
	if fn := s.throttled.Load(); fn != nil {
		return *fn
	}
	return nil
}

// SetRetryCount sets how many times a rate-limited call is retried (default 6)
func (tt *TurboTranslate) SetRetryCount(n int) {
	if n < 0 {
		n = 0
	}
	tt.settings.retryCount.Store(int64(n))
}

// RetryCount returns the current retry count
func (tt *TurboTranslate) RetryCount() int {
	return int(tt.settings.retryCount.Load())
}

// SetRetryDelay sets the delay before the first retry (default 500ms); it
// doubles on every further retry.
func (tt *TurboTranslate) SetRetryDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	tt.settings.retryDelay.Store(int64(d))
}

// RetryDelay returns the current base retry delay
func (tt *TurboTranslate) RetryDelay() time.Duration {
	return time.Duration(tt.settings.retryDelay.Load())
}

// SetThrottled registers the callback fired right before the final retry of a
// rate-limited call. Pass nil to clear it.
func (tt *TurboTranslate) SetThrottled(fn func()) {
	if fn == nil {
		tt.settings.throttled.Store(nil)
		return
	}
	tt.settings.throttled.Store(&fn)
}
