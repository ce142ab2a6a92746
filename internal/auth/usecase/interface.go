// Package usecase implements business logic for session-credential exchange.
package usecase

import (
	"context"

	authDomain "github.com/vttbridge/relay/internal/auth/domain"
)

// TokenExchanger trades a session credential for a short-lived bearer token
// against the external platform.
type TokenExchanger interface {
	ExchangeToken(ctx context.Context, credential string) (string, error)
}

// TokenUseCase resolves bearer tokens for session credentials, caching
// successful exchanges for a short TTL.
type TokenUseCase interface {
	// GetBearerToken returns a bearer token for the credential, reusing a
	// cached token when one is still valid.
	GetBearerToken(ctx context.Context, credential string) (string, error)

	// ValidateCredential performs the exchange as an explicit health check.
	// An invalid credential yields Valid=false, not an error; only transport
	// failures are returned as errors.
	ValidateCredential(ctx context.Context, credential string) (*authDomain.CredentialStatus, error)
}
