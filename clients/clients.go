// Package clients holds what every translation provider shares: the client
// interface and the error taxonomy the retry layer classifies.
package clients

import (
	"context"
	"fmt"

	"github.com/FrenchMajesty/turbo-translate/rate_limit"
)

// TranslatorInterface is implemented by each provider adapter.
//
// TranslateArray returns one translation per input, in input order. The bool is
// false when the service answered without a usable result (non-200 status,
// malformed body); the error is reserved for invalid input, rate limiting and
// transport failures.
type TranslatorInterface interface {
	Provider() rate_limit.Provider
	EstimateUnits(texts []string) int
	TranslateArray(ctx context.Context, texts []string) ([]string, bool, error)
}

// ValidateTexts rejects nil and empty batches.
func ValidateTexts(texts []string) error {
	if len(texts) == 0 {
		return fmt.Errorf("%w: texts must not be empty", ErrInvalidArgument)
	}
	return nil
}
