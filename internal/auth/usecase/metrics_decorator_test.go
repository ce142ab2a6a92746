package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/vttbridge/relay/internal/auth/domain"
	"github.com/vttbridge/relay/internal/auth/usecase/mocks"
	apperrors "github.com/vttbridge/relay/internal/errors"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestTokenUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("GetBearerToken success", func(t *testing.T) {
		mockNext := new(mocks.MockTokenUseCase)
		mockMetrics := new(mockBusinessMetrics)
		uc := NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("GetBearerToken", ctx, "cookie").Return("bearer", nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "token_exchange", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "token_exchange", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		token, err := uc.GetBearerToken(ctx, "cookie")
		assert.NoError(t, err)
		assert.Equal(t, "bearer", token)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetBearerToken error", func(t *testing.T) {
		mockNext := new(mocks.MockTokenUseCase)
		mockMetrics := new(mockBusinessMetrics)
		uc := NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("GetBearerToken", ctx, "bad").Return("", apperrors.ErrUnauthorized).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "token_exchange", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "token_exchange", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		_, err := uc.GetBearerToken(ctx, "bad")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ValidateCredential success", func(t *testing.T) {
		mockNext := new(mocks.MockTokenUseCase)
		mockMetrics := new(mockBusinessMetrics)
		uc := NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

		status := &authDomain.CredentialStatus{Valid: true, Token: "bearer"}
		mockNext.On("ValidateCredential", ctx, "cookie").Return(status, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "validate_credential", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "validate_credential", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.ValidateCredential(ctx, "cookie")
		assert.NoError(t, err)
		assert.Equal(t, status, res)
		mockMetrics.AssertExpectations(t)
	})
}
