// Package turbo_translate is the entry point for translating text: it drives a
// provider client through quota gating and rate-limit retries.
package turbo_translate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/FrenchMajesty/turbo-translate/clients"
	"github.com/FrenchMajesty/turbo-translate/metrics"
	"github.com/FrenchMajesty/turbo-translate/rate_limit"
	"github.com/FrenchMajesty/turbo-translate/utils/logger"
	"github.com/FrenchMajesty/turbo-translate/utils/retry"
	"github.com/google/uuid"
)

const defaultEventBufferSize = 1000

// Options configures a TurboTranslate instance.
type Options struct {
	// Client performs the actual translation round trip. Required.
	Client clients.TranslatorInterface

	// Backend gates requests on a client-side quota. Nil disables the gate.
	Backend rate_limit.Backend

	Logger logger.Logger

	// Metrics records Prometheus counters. Nil disables them.
	Metrics *metrics.Metrics

	// RetryConfig seeds the retry settings. Nil uses retry.DefaultConfig().
	RetryConfig *retry.Config

	// Throttled fires once per call, right before the last retry on a 429.
	Throttled func()

	// Sleep waits between retries and while blocked on quota. Defaults to a
	// context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error

	EventBufferSize int
}

// TurboTranslate wraps a provider client with rate-limit retry, an optional
// quota gate and an event stream. Safe for concurrent use; settings may be
// changed while calls are in flight and apply to calls started afterwards.
type TurboTranslate struct {
	uniqueID string
	client   clients.TranslatorInterface
	backend  rate_limit.Backend
	logger   logger.Logger
	metrics  *metrics.Metrics
	sleep    func(ctx context.Context, d time.Duration) error
	settings *settings

	mu        sync.RWMutex // protects eventChan/stopped and the counters
	eventChan chan *Event
	stopped   bool
	startTime time.Time
	stats     TurboTranslateStats
}

var instance *TurboTranslate
var once sync.Once

// NewTurboTranslate creates a new instance. It panics if opts.Client is nil.
func NewTurboTranslate(opts Options) *TurboTranslate {
	if opts.Client == nil {
		panic("turbo_translate: Options.Client is required")
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNoopLogger()
	}

	cfg := retry.DefaultConfig()
	if opts.RetryConfig != nil {
		cfg = *opts.RetryConfig
	}

	sleep := opts.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	bufferSize := opts.EventBufferSize
	if bufferSize <= 0 {
		bufferSize = defaultEventBufferSize
	}

	tt := &TurboTranslate{
		uniqueID:  uuid.New().String()[:6],
		client:    opts.Client,
		backend:   opts.Backend,
		logger:    log,
		metrics:   opts.Metrics,
		sleep:     sleep,
		settings:  newSettings(cfg),
		eventChan: make(chan *Event, bufferSize),
		startTime: time.Now(),
	}
	tt.SetThrottled(opts.Throttled)

	tt.logger.Printf("TurboTranslate %s: Started with provider %s (retries=%d, base delay=%v)",
		tt.uniqueID, opts.Client.Provider(), cfg.MaxRetries, cfg.BaseDelay)

	return tt
}

// NewShared creates the process-wide instance on first call and returns it on
// every call; later opts are ignored.
func NewShared(opts Options) *TurboTranslate {
	once.Do(func() {
		instance = NewTurboTranslate(opts)
	})
	return instance
}

// GetShared returns the process-wide instance created by NewShared
func GetShared() (*TurboTranslate, error) {
	if instance == nil {
		return nil, fmt.Errorf("turbo translate instance is nil")
	}
	return instance, nil
}

// translation is the value carried through the retry loop
type translation struct {
	texts []string
	ok    bool
}

// TranslateArray translates texts in order. ok is false when the service gave
// no usable result. Errors are invalid input, an exhausted 429 retry budget
// (retry.ErrRetriesExhausted), transport failures and context cancellation.
func (tt *TurboTranslate) TranslateArray(ctx context.Context, texts []string) ([]string, bool, error) {
	if err := clients.ValidateTexts(texts); err != nil {
		return nil, false, err
	}

	requestID := uuid.New()
	provider := tt.client.Provider()
	units := tt.client.EstimateUnits(texts)
	start := time.Now()

	tt.countRequest()
	tt.metrics.RecordRequest(provider.String())
	tt.emitEvent(EventRequestStarted, requestID, map[string]any{
		"provider": provider.String(),
		"texts":    len(texts),
		"units":    units,
	})

	if err := tt.waitForBudget(ctx, requestID, provider, units); err != nil {
		tt.finishFailed(requestID, provider, err, start)
		return nil, false, err
	}

	opts := tt.retryOptions(requestID, provider)
	result, err := retry.Execute(ctx, opts, func(ctx context.Context, attempt int) (translation, error) {
		tt.recordConsumption(provider, 0, 1)

		translated, ok, err := tt.client.TranslateArray(ctx, texts)
		if err != nil {
			return translation{}, err
		}
		return translation{texts: translated, ok: ok}, nil
	})

	if err != nil {
		if errors.Is(err, retry.ErrRetriesExhausted) {
			tt.countThrottled()
		}
		tt.finishFailed(requestID, provider, err, start)
		return nil, false, err
	}

	if !result.ok {
		tt.finishNoResult(requestID, provider, start)
		return nil, false, nil
	}

	tt.recordConsumption(provider, units, 0)
	tt.finishCompleted(requestID, provider, units, start)
	return result.texts, true, nil
}

// TranslateString translates a single text. ok is false when the service gave
// no usable result.
func (tt *TurboTranslate) TranslateString(ctx context.Context, text string) (string, bool, error) {
	translated, ok, err := tt.TranslateArray(ctx, []string{text})
	if err != nil || !ok {
		return "", ok, err
	}
	return translated[0], true, nil
}

// retryOptions snapshots the current settings into a fresh retry state
func (tt *TurboTranslate) retryOptions(requestID uuid.UUID, provider rate_limit.Provider) retry.Options {
	return retry.Options{
		Config:       tt.settings.retryConfig(),
		ErrorChecker: clients.IsRateLimited,
		APIName:      fmt.Sprintf("TurboTranslate %s: %s", tt.uniqueID, provider),
		Logger:       tt.logger,
		Sleep:        tt.sleep,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			tt.countRetry()
			tt.metrics.RecordRetry(provider.String())
			tt.emitEvent(EventRequestThrottled, requestID, map[string]any{
				"attempt": attempt + 1,
				"error":   err.Error(),
			})
			tt.emitEvent(EventRequestRetrying, requestID, map[string]any{
				"attempt": attempt + 2,
				"delay":   delay.String(),
			})
		},
		OnExhausting: func() {
			tt.countThrottleWarning()
			tt.metrics.RecordThrottleWarning(provider.String())
			tt.emitEvent(EventThrottleWarning, requestID, nil)
			if cb := tt.settings.throttledCallback(); cb != nil {
				cb()
			}
		},
	}
}

func (tt *TurboTranslate) finishCompleted(requestID uuid.UUID, provider rate_limit.Provider, units int, start time.Time) {
	tt.mu.Lock()
	tt.stats.Completed++
	tt.stats.UnitsConsumed += units
	tt.mu.Unlock()

	tt.metrics.RecordUnits(provider.String(), units)
	tt.metrics.RecordOutcome(provider.String(), metrics.OutcomeCompleted, time.Since(start).Seconds())

	tt.emitEvent(EventRequestCompleted, requestID, map[string]any{
		"units":    units,
		"duration": time.Since(start).String(),
	})
}

func (tt *TurboTranslate) finishNoResult(requestID uuid.UUID, provider rate_limit.Provider, start time.Time) {
	tt.mu.Lock()
	tt.stats.NoResult++
	tt.mu.Unlock()

	tt.metrics.RecordOutcome(provider.String(), metrics.OutcomeNoResult, time.Since(start).Seconds())

	tt.logger.Printf("TurboTranslate %s: request %s returned no result", tt.uniqueID, requestID)
	tt.emitEvent(EventRequestNoResult, requestID, map[string]any{
		"duration": time.Since(start).String(),
	})
}

func (tt *TurboTranslate) finishFailed(requestID uuid.UUID, provider rate_limit.Provider, err error, start time.Time) {
	tt.mu.Lock()
	tt.stats.Failed++
	tt.mu.Unlock()

	outcome := metrics.OutcomeFailed
	if errors.Is(err, retry.ErrRetriesExhausted) {
		outcome = metrics.OutcomeExhausted
	}
	tt.metrics.RecordOutcome(provider.String(), outcome, time.Since(start).Seconds())

	tt.logger.Printf("TurboTranslate %s: request %s failed: %v", tt.uniqueID, requestID, err)
	tt.emitEvent(EventRequestFailed, requestID, map[string]any{
		"error":    err.Error(),
		"duration": time.Since(start).String(),
	})
}

// Stop closes the event channel and logs a summary. Translate calls keep
// working after Stop; their events are dropped.
func (tt *TurboTranslate) Stop() {
	tt.mu.Lock()
	if tt.stopped {
		tt.mu.Unlock()
		return
	}
	tt.stopped = true
	close(tt.eventChan)
	tt.mu.Unlock()

	tt.logStats()
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
