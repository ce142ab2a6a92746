package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
)

type characterUseCase struct {
	fetcher CharacterFetcher
	tokens  BearerTokenProvider
	hasher  CredentialHasher
	logger  *slog.Logger
}

// NewCharacterUseCase returns a CharacterUseCase proxying raw character
// documents. Character responses are not cached; the upstream document changes
// whenever the character does.
func NewCharacterUseCase(fetcher CharacterFetcher, tokens BearerTokenProvider, hasher CredentialHasher, logger *slog.Logger) CharacterUseCase {
	return &characterUseCase{
		fetcher: fetcher,
		tokens:  tokens,
		hasher:  hasher,
		logger:  logger,
	}
}

func (c *characterUseCase) Get(ctx context.Context, credential, path string) (json.RawMessage, error) {
	token, err := c.tokens.GetBearerToken(ctx, credential)
	if err != nil {
		return nil, err
	}

	doc, err := c.fetcher.GetCharacter(ctx, token, path)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("character document proxied",
		slog.String("credential_hash", c.hasher.HashCredential(credential)[:12]),
		slog.String("path", path),
		slog.Int("bytes", len(doc)),
	)
	return doc, nil
}
