package turbo_translate

import (
	"context"
	"math/rand"
	"time"

	"github.com/FrenchMajesty/turbo-translate/rate_limit"
	"github.com/google/uuid"
)

// waitForBudget blocks until the backend has room for one request of units.
// A request larger than a whole window goes through once the window is fresh,
// so oversized batches are never starved.
func (tt *TurboTranslate) waitForBudget(ctx context.Context, requestID uuid.UUID, provider rate_limit.Provider, units int) error {
	if tt.backend == nil {
		return nil
	}

	for {
		if tt.hasBudget(provider, units) {
			return nil
		}

		// Not enough budget, wait until the window resets
		randomStagger := time.Duration(rand.Intn(100)) * time.Millisecond
		wait := tt.backend.TimeUntilReset() + randomStagger

		tt.mu.Lock()
		tt.stats.BudgetBlocks++
		tt.mu.Unlock()
		tt.metrics.RecordBudgetBlock(provider.String())

		tt.logger.Printf("TurboTranslate %s: %s budget exhausted, waiting %v", tt.uniqueID, provider, wait)
		tt.emitEvent(EventBudgetBlocked, requestID, map[string]any{
			"provider": provider.String(),
			"units":    units,
			"wait":     wait.String(),
		})

		if err := tt.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (tt *TurboTranslate) hasBudget(provider rate_limit.Provider, units int) bool {
	budget := tt.backend.Budget(provider)
	unitsAvailable, requestsAvailable := tt.backend.BudgetAvailable(provider)

	// A zero limit means the provider is not tracked on that axis
	requestsOK := budget.RPM == 0 || requestsAvailable > 0
	unitsOK := budget.UPM == 0 || unitsAvailable >= units || unitsAvailable == budget.UPM

	return requestsOK && unitsOK
}

func (tt *TurboTranslate) recordConsumption(provider rate_limit.Provider, units int, requests int) {
	if tt.backend == nil {
		return
	}
	if err := tt.backend.RecordConsumption(provider, units, requests); err != nil {
		tt.logger.Printf("TurboTranslate %s: failed to record %s consumption: %v", tt.uniqueID, provider, err)
	}
}
