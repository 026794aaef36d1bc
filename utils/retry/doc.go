// Package retry re-runs an operation that failed for a recoverable reason,
// waiting an exponentially growing delay between attempts.
//
// The package supports:
//   - A bounded number of retries with a doubling delay
//   - A caller supplied ErrorChecker deciding which failures are recoverable
//   - A one-shot OnExhausting hook fired right before the final retry
//   - Context-aware waits so a cancelled caller stops retrying
//   - Optional logging of retry attempts
//
// Basic Usage:
//
//	ctx := context.Background()
//	opts := retry.Options{
//	    Config: retry.DefaultConfig(),
//	    ErrorChecker: func(err error) bool {
//	        // Return true if the error should trigger a retry
//	        return clients.IsRateLimited(err)
//	    },
//	    APIName: "Microsoft",
//	}
//
//	texts, err := retry.Execute(ctx, opts, func(ctx context.Context, attempt int) ([]string, error) {
//	    return callTranslator(ctx)
//	})
//
// Configuration:
//
// The Config struct allows fine-tuning of retry behavior:
//   - MaxRetries: Maximum number of retries after the first attempt (default: 6)
//   - BaseDelay: Delay before the first retry (default: 500ms)
//   - MaxDelay: Upper bound on a single delay, zero means uncapped (default: 0)
//   - BackoffMultiple: Multiplier applied after every retry (default: 2.0)
//
// The delay before retry i (0-based) is BaseDelay * BackoffMultiple^i, capped
// at MaxDelay when MaxDelay is positive.
//
// Exhaustion:
//
// When the checker still reports a recoverable error after MaxRetries retries,
// Execute returns an *ExhaustedError. It matches ErrRetriesExhausted with
// errors.Is and unwraps to the last error seen.
//
// Context Support:
//
// Execute returns ctx.Err() as soon as the context is cancelled while waiting
// between attempts.
package retry
