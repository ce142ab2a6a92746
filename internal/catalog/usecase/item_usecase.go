package usecase

import (
	"context"
	"log/slog"

	"github.com/vttbridge/relay/internal/cache"
	"github.com/vttbridge/relay/internal/catalog/domain"
)

type itemUseCase struct {
	fetcher     ItemFetcher
	sources     SourceUseCase
	tokens      BearerTokenProvider
	hasher      CredentialHasher
	resultCache *cache.Cache[*domain.ItemResult]
	logger      *slog.Logger
}

// NewItemUseCase returns an ItemUseCase that caches enhanced results per
// credential and source filter.
func NewItemUseCase(
	fetcher ItemFetcher,
	sources SourceUseCase,
	tokens BearerTokenProvider,
	hasher CredentialHasher,
	resultCache *cache.Cache[*domain.ItemResult],
	logger *slog.Logger,
) ItemUseCase {
	return &itemUseCase{
		fetcher:     fetcher,
		sources:     sources,
		tokens:      tokens,
		hasher:      hasher,
		resultCache: resultCache,
		logger:      logger,
	}
}

func (i *itemUseCase) FetchAllItems(ctx context.Context, credential string, sourceFilterIDs []int, bustCache bool) (*domain.ItemResult, error) {
	key := resultCacheKey(i.hasher.HashCredential(credential), sourceFilterIDs)
	if bustCache {
		i.resultCache.Remove(key)
	} else if result, ok := i.resultCache.Get(key); ok {
		i.logger.Debug("item result served from cache",
			slog.String("credential_hash", key[:12]),
			slog.Int("items", len(result.Items)),
		)
		return result, nil
	}

	sourceMap := i.sources.SourceMap(ctx)
	allSources := i.sources.Sources(ctx)

	token, err := i.tokens.GetBearerToken(ctx, credential)
	if err != nil {
		return nil, err
	}

	items, err := i.fetcher.FetchItems(ctx, token)
	if err != nil {
		return nil, err
	}

	// Ownership and per-source stats are computed over the unfiltered
	// response so the report reflects the whole account.
	ownership := make(map[int]bool)
	sourceStats := make(map[string]int)
	for idx := range items {
		for _, ref := range items[idx].Sources {
			ownership[ref.SourceID] = true
			name := domain.ResolveSourceName(ref, sourceMap)
			sourceStats[name]++
		}
	}

	filterSet := make(map[int]bool, len(sourceFilterIDs))
	for _, id := range sourceFilterIDs {
		filterSet[id] = true
	}

	kept := make([]domain.Item, 0, len(items))
	excluded := 0
	for idx := range items {
		item := items[idx]
		if domain.CitesExcluded(item.Sources) {
			excluded++
			continue
		}
		if len(filterSet) > 0 && !domain.CitesAny(item.Sources, filterSet) {
			continue
		}
		item.Enhance(sourceMap)
		kept = append(kept, item)
	}

	result := &domain.ItemResult{
		Items:               kept,
		SourceStats:         sourceStats,
		OwnershipBySourceID: ownership,
		AllSources:          allSources,
	}

	i.resultCache.Add(key, result)
	i.logger.Info("item catalog fetched",
		slog.String("credential_hash", key[:12]),
		slog.Int("fetched", len(items)),
		slog.Int("returned", len(kept)),
		slog.Int("excluded", excluded),
	)
	return result, nil
}
