// Package mocks provides mock implementations for testing auth use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTokenExchanger is a mock implementation of TokenExchanger for testing.
type MockTokenExchanger struct {
	mock.Mock
}

// ExchangeToken mocks the ExchangeToken method of TokenExchanger.
func (m *MockTokenExchanger) ExchangeToken(ctx context.Context, credential string) (string, error) {
	args := m.Called(ctx, credential)
	return args.String(0), args.Error(1)
}
