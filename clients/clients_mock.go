package clients

import (
	"context"

	"github.com/FrenchMajesty/turbo-translate/rate_limit"
	"github.com/stretchr/testify/mock"
)

type MockTranslatorClient struct {
	mock.Mock
}

// Ensure MockTranslatorClient implements TranslatorInterface
var _ TranslatorInterface = (*MockTranslatorClient)(nil)

func NewMockTranslatorClient() *MockTranslatorClient {
	return &MockTranslatorClient{}
}

func (m *MockTranslatorClient) Provider() rate_limit.Provider {
	args := m.Called()
	return args.Get(0).(rate_limit.Provider)
}

func (m *MockTranslatorClient) EstimateUnits(texts []string) int {
	args := m.Called(texts)
	return args.Int(0)
}

func (m *MockTranslatorClient) TranslateArray(ctx context.Context, texts []string) ([]string, bool, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	if fn, ok := args.Get(0).(func(context.Context, []string) []string); ok {
		return fn(ctx, texts), args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Bool(1), args.Error(2)
}
