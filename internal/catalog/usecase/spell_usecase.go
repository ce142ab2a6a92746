package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vttbridge/relay/internal/cache"
	"github.com/vttbridge/relay/internal/catalog/domain"
	"github.com/vttbridge/relay/internal/errors"
)

type spellUseCase struct {
	fetcher     SpellFetcher
	sources     SourceUseCase
	tokens      BearerTokenProvider
	hasher      CredentialHasher
	resultCache *cache.Cache[*domain.SpellResult]
	logger      *slog.Logger
}

// NewSpellUseCase returns a SpellUseCase that fans out one request per
// spellcasting class and merges the responses by spell name.
func NewSpellUseCase(
	fetcher SpellFetcher,
	sources SourceUseCase,
	tokens BearerTokenProvider,
	hasher CredentialHasher,
	resultCache *cache.Cache[*domain.SpellResult],
	logger *slog.Logger,
) SpellUseCase {
	return &spellUseCase{
		fetcher:     fetcher,
		sources:     sources,
		tokens:      tokens,
		hasher:      hasher,
		resultCache: resultCache,
		logger:      logger,
	}
}

func (s *spellUseCase) FetchAllSpells(ctx context.Context, credential string, sourceFilterIDs []int, bustCache bool) (*domain.SpellResult, error) {
	key := resultCacheKey(s.hasher.HashCredential(credential), sourceFilterIDs)
	if bustCache {
		s.resultCache.Remove(key)
	} else if result, ok := s.resultCache.Get(key); ok {
		s.logger.Debug("spell result served from cache",
			slog.String("credential_hash", key[:12]),
			slog.Int("spells", len(result.Spells)),
		)
		return result, nil
	}

	sourceMap := s.sources.SourceMap(ctx)
	allSources := s.sources.Sources(ctx)

	token, err := s.tokens.GetBearerToken(ctx, credential)
	if err != nil {
		return nil, err
	}

	// One request per class. A failed class contributes an empty list so a
	// single flaky upstream call degrades the result instead of failing it.
	// Results land in a slice indexed by class table position, which keeps
	// the merge order deterministic regardless of completion order.
	perClass := make([][]domain.Spell, len(domain.SpellcastingClasses))
	failures := make([]bool, len(domain.SpellcastingClasses))

	g, gctx := errgroup.WithContext(ctx)
	for idx, class := range domain.SpellcastingClasses {
		g.Go(func() error {
			spells, err := s.fetcher.FetchClassSpells(gctx, token, class.ID, class.MaxLevel)
			if err != nil {
				s.logger.Warn("class spell fetch failed",
					slog.String("class", class.Name),
					slog.Int("class_id", class.ID),
					slog.String("error", err.Error()),
				)
				failures[idx] = true
				return nil
			}
			for i := range spells {
				spells[i].Enhance(sourceMap, class.Name)
			}
			perClass[idx] = spells
			return nil
		})
	}
	// Goroutines always return nil; Wait only synchronizes.
	_ = g.Wait()

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	if failed == len(domain.SpellcastingClasses) {
		return nil, errors.Wrap(errors.ErrUpstreamUnavailable, "all class spell requests failed")
	}

	merged, skipped := domain.MergeSpells(perClass)

	ownership := make(map[int]bool)
	sourceStats := make(map[string]int)
	for idx := range merged {
		for _, ref := range merged[idx].Sources {
			ownership[ref.SourceID] = true
			name := domain.ResolveSourceName(ref, sourceMap)
			sourceStats[name]++
		}
	}

	filterSet := make(map[int]bool, len(sourceFilterIDs))
	for _, id := range sourceFilterIDs {
		filterSet[id] = true
	}

	kept := make([]domain.Spell, 0, len(merged))
	excluded := 0
	for idx := range merged {
		spell := merged[idx]
		if domain.CitesExcluded(spell.Sources) {
			excluded++
			continue
		}
		if len(filterSet) > 0 && !domain.CitesAny(spell.Sources, filterSet) {
			continue
		}
		kept = append(kept, spell)
	}

	result := &domain.SpellResult{
		Spells:              kept,
		SourceStats:         sourceStats,
		OwnershipBySourceID: ownership,
		AllSources:          allSources,
		SkippedNameless:     skipped,
	}

	s.resultCache.Add(key, result)
	s.logger.Info("spell catalog fetched",
		slog.String("credential_hash", key[:12]),
		slog.Int("merged", len(merged)),
		slog.Int("returned", len(kept)),
		slog.Int("excluded", excluded),
		slog.Int("failed_classes", failed),
		slog.Int("skipped_nameless", skipped),
	)
	return result, nil
}
