package memory

import (
	"sync"
	"time"

	"github.com/FrenchMajesty/turbo-translate/rate_limit"
)

// usageData tracks unit and request consumption
type usageData struct {
	Units    int
	Requests int
}

// Memory is an in-memory quota backend for single-process use.
// Usage resets at every minute boundary.
type Memory struct {
	state         map[rate_limit.Provider]usageData
	currentMinute time.Time
	budgets       map[rate_limit.Provider]rate_limit.RateLimit
	now           func() time.Time
	mu            sync.Mutex
}

var _ rate_limit.Backend = (*Memory)(nil)

// NewBackend creates a new in-memory backend with the default budgets
func NewBackend() *Memory {
	return NewBackendWithBudgets(rate_limit.DefaultBudgets())
}

// NewBackendWithBudgets creates a backend with custom budgets. Providers
// missing from budgets get a zero budget.
func NewBackendWithBudgets(budgets map[rate_limit.Provider]rate_limit.RateLimit) *Memory {
	m := &Memory{
		state:   make(map[rate_limit.Provider]usageData),
		budgets: make(map[rate_limit.Provider]rate_limit.RateLimit, len(budgets)),
		now:     time.Now,
	}
	for p, b := range budgets {
		m.budgets[p] = b
	}
	m.currentMinute = m.now().Truncate(time.Minute)
	return m
}

// BudgetAvailable returns the remaining unit and request budget for the provider
func (m *Memory) BudgetAvailable(provider rate_limit.Provider) (unitsAvailable int, requestsAvailable int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkAndResetMinute()

	usage := m.state[provider]
	budget := m.budgets[provider]

	unitsAvailable = max(budget.UPM-usage.Units, 0)
	requestsAvailable = max(budget.RPM-usage.Requests, 0)

	return unitsAvailable, requestsAvailable
}

// Budget returns the configured per-minute budget for the provider
func (m *Memory) Budget(provider rate_limit.Provider) rate_limit.RateLimit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.budgets[provider]
}

// RecordConsumption records unit and request usage for the provider
func (m *Memory) RecordConsumption(provider rate_limit.Provider, units int, requests int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkAndResetMinute()

	usage := m.state[provider]
	usage.Units += units
	usage.Requests += requests
	m.state[provider] = usage

	return nil
}

// TimeUntilReset returns the duration until the next minute boundary
func (m *Memory) TimeUntilReset() time.Duration {
	m.mu.Lock()
	now := m.now()
	m.mu.Unlock()

	nextMinute := now.Truncate(time.Minute).Add(time.Minute)
	return nextMinute.Sub(now)
}

// SetBudgetForTests sets a custom budget for the provider
func (m *Memory) SetBudgetForTests(provider rate_limit.Provider, units int, requests int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.budgets[provider] = rate_limit.RateLimit{
		UPM: units,
		RPM: requests,
	}

	return nil
}

// Close is a no-op for the in-memory backend
func (m *Memory) Close() error {
	return nil
}

// checkAndResetMinute resets state if we're in a new minute
// Note: caller must hold the lock
func (m *Memory) checkAndResetMinute() {
	currentMinute := m.now().Truncate(time.Minute)
	if !m.currentMinute.Equal(currentMinute) {
		m.currentMinute = currentMinute
		m.state = make(map[rate_limit.Provider]usageData)
	}
}
