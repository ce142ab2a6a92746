package usecase

import (
	"context"
	"time"

	authDomain "github.com/vttbridge/relay/internal/auth/domain"
	"github.com/vttbridge/relay/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GetBearerToken records metrics for token exchange operations.
func (t *tokenUseCaseWithMetrics) GetBearerToken(ctx context.Context, credential string) (string, error) {
	start := time.Now()
	token, err := t.next.GetBearerToken(ctx, credential)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_exchange", status)
	t.metrics.RecordDuration(ctx, "auth", "token_exchange", time.Since(start), status)

	return token, err
}

// ValidateCredential records metrics for credential validation operations.
func (t *tokenUseCaseWithMetrics) ValidateCredential(
	ctx context.Context,
	credential string,
) (*authDomain.CredentialStatus, error) {
	start := time.Now()
	result, err := t.next.ValidateCredential(ctx, credential)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "validate_credential", status)
	t.metrics.RecordDuration(ctx, "auth", "validate_credential", time.Since(start), status)

	return result, err
}
