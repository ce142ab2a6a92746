package usecase

import (
	"context"
	"log/slog"

	authDomain "github.com/vttbridge/relay/internal/auth/domain"
	authService "github.com/vttbridge/relay/internal/auth/service"
	"github.com/vttbridge/relay/internal/cache"
	apperrors "github.com/vttbridge/relay/internal/errors"
)

// tokenUseCase implements TokenUseCase with a TTL cache keyed by the
// credential's hash.
type tokenUseCase struct {
	exchanger         TokenExchanger
	credentialService authService.CredentialService
	tokenCache        *cache.Cache[string]
	logger            *slog.Logger
}

// NewTokenUseCase creates a TokenUseCase.
//
// The cache TTL should stay in the minutes range: the platform's bearer
// tokens are short-lived by design, and caching only amortizes the exchange
// across a burst of catalog requests (items + spells + sources) without
// stretching the token's intended lifetime.
func NewTokenUseCase(
	exchanger TokenExchanger,
	credentialService authService.CredentialService,
	tokenCache *cache.Cache[string],
	logger *slog.Logger,
) TokenUseCase {
	return &tokenUseCase{
		exchanger:         exchanger,
		credentialService: credentialService,
		tokenCache:        tokenCache,
		logger:            logger,
	}
}

// GetBearerToken resolves a bearer token for the credential.
//
// The cache key is the credential's SHA-256 digest, so neither cache dumps
// nor log lines can leak the raw value. Failed exchanges are never cached;
// a later call re-derives transparently.
func (t *tokenUseCase) GetBearerToken(ctx context.Context, credential string) (string, error) {
	key := t.credentialService.HashCredential(credential)

	if token, ok := t.tokenCache.Get(key); ok {
		t.logger.Debug("bearer token cache hit", slog.String("credential_hash", key[:12]))
		return token, nil
	}

	token, err := t.exchanger.ExchangeToken(ctx, credential)
	if err != nil {
		return "", err
	}

	t.tokenCache.Add(key, token)
	t.logger.Debug("bearer token exchanged", slog.String("credential_hash", key[:12]))
	return token, nil
}

// ValidateCredential wraps the exchange as a health check without forcing a
// downstream fetch.
func (t *tokenUseCase) ValidateCredential(
	ctx context.Context,
	credential string,
) (*authDomain.CredentialStatus, error) {
	token, err := t.GetBearerToken(ctx, credential)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUnauthorized) {
			return &authDomain.CredentialStatus{
				Valid:   false,
				Message: "session credential was rejected; sign in again and retry",
			}, nil
		}
		return nil, err
	}

	return &authDomain.CredentialStatus{Valid: true, Token: token}, nil
}
