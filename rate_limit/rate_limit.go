package rate_limit

// RateLimit is a per-minute budget. Units are characters for the Microsoft
// translator and tokens for OpenAI.
type RateLimit struct {
	RPM int // Requests per minute
	UPM int // Units per minute
}

// MicrosoftRateLimit approximates the free tier's 2M characters per hour,
// with a 10% buffer to stay under the hourly quota.
var MicrosoftRateLimit = RateLimit{
	RPM: 1000,
	UPM: 30_000,
}

// OpenAIRateLimit is 10K RPM and 10M TPM with a 10% buffer.
var OpenAIRateLimit = RateLimit{
	RPM: 10 * 1000,
	UPM: 9 * 1_000_000,
}

// DefaultBudgets returns a fresh map of the built-in budgets.
func DefaultBudgets() map[Provider]RateLimit {
	return map[Provider]RateLimit{
		ProviderMicrosoft: MicrosoftRateLimit,
		ProviderOpenAI:    OpenAIRateLimit,
	}
}
