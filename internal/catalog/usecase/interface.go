// Package usecase implements catalog fetching: source registry, item and
// spell fetchers, and the character passthrough.
package usecase

import (
	"context"
	"encoding/json"

	"github.com/vttbridge/relay/internal/catalog/domain"
)

// SourceFetcher retrieves the platform's source-book catalog.
type SourceFetcher interface {
	FetchSources(ctx context.Context) ([]domain.Source, error)
}

// ItemFetcher retrieves the full shared item catalog.
type ItemFetcher interface {
	FetchItems(ctx context.Context, bearerToken string) ([]domain.Item, error)
}

// SpellFetcher retrieves one class's complete spell list.
type SpellFetcher interface {
	FetchClassSpells(ctx context.Context, bearerToken string, classID, classLevel int) ([]domain.Spell, error)
}

// CharacterFetcher proxies a character-service GET.
type CharacterFetcher interface {
	GetCharacter(ctx context.Context, bearerToken, path string) (json.RawMessage, error)
}

// BearerTokenProvider exchanges a session credential for a short-lived bearer
// token. Implemented by the auth usecase.
type BearerTokenProvider interface {
	GetBearerToken(ctx context.Context, credential string) (string, error)
}

// CredentialHasher produces the digest used in cache keys and log fields in
// place of the raw credential.
type CredentialHasher interface {
	HashCredential(credential string) string
}

// SourceUseCase caches and exposes the platform's source catalog. It degrades
// to an empty catalog on upstream failure so dependent fetchers fall back to
// numbered source labels instead of failing outright.
type SourceUseCase interface {
	// Sources returns the cached source catalog, fetching on a cache miss.
	Sources(ctx context.Context) []domain.Source

	// SourceMap returns the derived id → name lookup.
	SourceMap(ctx context.Context) domain.SourceMap

	// ListSourceBooks returns the reduced API shape, sorted by name.
	ListSourceBooks(ctx context.Context) []domain.SourceBook
}

// ItemUseCase fetches, enhances, and caches the item catalog per credential.
type ItemUseCase interface {
	FetchAllItems(
		ctx context.Context,
		credential string,
		sourceFilterIDs []int,
		bustCache bool,
	) (*domain.ItemResult, error)
}

// SpellUseCase fans out per-class spell fetches, merges them by spell name,
// and caches the merged result per credential.
type SpellUseCase interface {
	FetchAllSpells(
		ctx context.Context,
		credential string,
		sourceFilterIDs []int,
		bustCache bool,
	) (*domain.SpellResult, error)
}

// CharacterUseCase proxies authenticated character-service reads.
type CharacterUseCase interface {
	Get(ctx context.Context, credential, path string) (json.RawMessage, error)
}
