package rate_limit

import "time"

// Provider identifies the translation service a budget applies to
type Provider int

const (
	ProviderMicrosoft Provider = iota
	ProviderOpenAI
)

func (p Provider) String() string {
	switch p {
	case ProviderMicrosoft:
		return "microsoft"
	case ProviderOpenAI:
		return "openai"
	default:
		return "unknown"
	}
}

// Backend defines the interface for client-side quota tracking.
// Implementations decide where usage lives (in-memory, shared store, etc.).
type Backend interface {
	// BudgetAvailable returns the units and requests still available to the
	// provider in the current window.
	BudgetAvailable(provider Provider) (unitsAvailable int, requestsAvailable int)

	// Budget returns the full per-window budget configured for the provider.
	Budget(provider Provider) RateLimit

	// RecordConsumption records unit and request usage for the provider.
	RecordConsumption(provider Provider, units int, requests int) error

	// TimeUntilReset returns the duration until the current window ends.
	TimeUntilReset() time.Duration

	// SetBudgetForTests overrides a provider's budget.
	SetBudgetForTests(provider Provider, units int, requests int) error

	// Close releases any resources held by the backend.
	Close() error
}
