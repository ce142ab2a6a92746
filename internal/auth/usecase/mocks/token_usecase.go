package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/vttbridge/relay/internal/auth/domain"
)

// MockTokenUseCase is a mock implementation of usecase.TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

func (m *MockTokenUseCase) GetBearerToken(ctx context.Context, credential string) (string, error) {
	args := m.Called(ctx, credential)
	return args.String(0), args.Error(1)
}

func (m *MockTokenUseCase) ValidateCredential(ctx context.Context, credential string) (*authDomain.CredentialStatus, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CredentialStatus), args.Error(1)
}
