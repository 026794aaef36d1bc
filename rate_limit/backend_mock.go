package rate_limit

import (
	"time"

	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

// Ensure MockBackend implements Backend
var _ Backend = (*MockBackend)(nil)

func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (m *MockBackend) BudgetAvailable(provider Provider) (int, int) {
	args := m.Called(provider)
	return args.Int(0), args.Int(1)
}

func (m *MockBackend) Budget(provider Provider) RateLimit {
	args := m.Called(provider)
	return args.Get(0).(RateLimit)
}

func (m *MockBackend) RecordConsumption(provider Provider, units int, requests int) error {
	args := m.Called(provider, units, requests)
	return args.Error(0)
}

func (m *MockBackend) TimeUntilReset() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

func (m *MockBackend) SetBudgetForTests(provider Provider, units int, requests int) error {
	args := m.Called(provider, units, requests)
	return args.Error(0)
}

func (m *MockBackend) Close() error {
	args := m.Called()
	return args.Error(0)
}
