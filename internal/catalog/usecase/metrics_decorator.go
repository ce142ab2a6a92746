package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vttbridge/relay/internal/catalog/domain"
	"github.com/vttbridge/relay/internal/metrics"
)

// itemUseCaseWithMetrics decorates ItemUseCase with metrics instrumentation.
type itemUseCaseWithMetrics struct {
	next    ItemUseCase
	metrics metrics.BusinessMetrics
}

// NewItemUseCaseWithMetrics wraps an ItemUseCase with metrics recording.
func NewItemUseCaseWithMetrics(useCase ItemUseCase, m metrics.BusinessMetrics) ItemUseCase {
	return &itemUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// FetchAllItems records metrics for item fetch operations.
func (i *itemUseCaseWithMetrics) FetchAllItems(
	ctx context.Context,
	credential string,
	sourceFilterIDs []int,
	bustCache bool,
) (*domain.ItemResult, error) {
	start := time.Now()
	result, err := i.next.FetchAllItems(ctx, credential, sourceFilterIDs, bustCache)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "items", "fetch_items", status)
	i.metrics.RecordDuration(ctx, "items", "fetch_items", time.Since(start), status)

	return result, err
}

// spellUseCaseWithMetrics decorates SpellUseCase with metrics instrumentation.
type spellUseCaseWithMetrics struct {
	next    SpellUseCase
	metrics metrics.BusinessMetrics
}

// NewSpellUseCaseWithMetrics wraps a SpellUseCase with metrics recording.
func NewSpellUseCaseWithMetrics(useCase SpellUseCase, m metrics.BusinessMetrics) SpellUseCase {
	return &spellUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// FetchAllSpells records metrics for spell fetch operations.
func (s *spellUseCaseWithMetrics) FetchAllSpells(
	ctx context.Context,
	credential string,
	sourceFilterIDs []int,
	bustCache bool,
) (*domain.SpellResult, error) {
	start := time.Now()
	result, err := s.next.FetchAllSpells(ctx, credential, sourceFilterIDs, bustCache)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "spells", "fetch_spells", status)
	s.metrics.RecordDuration(ctx, "spells", "fetch_spells", time.Since(start), status)

	return result, err
}

// characterUseCaseWithMetrics decorates CharacterUseCase with metrics instrumentation.
type characterUseCaseWithMetrics struct {
	next    CharacterUseCase
	metrics metrics.BusinessMetrics
}

// NewCharacterUseCaseWithMetrics wraps a CharacterUseCase with metrics recording.
func NewCharacterUseCaseWithMetrics(useCase CharacterUseCase, m metrics.BusinessMetrics) CharacterUseCase {
	return &characterUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Get records metrics for character proxy operations.
func (c *characterUseCaseWithMetrics) Get(ctx context.Context, credential, path string) (json.RawMessage, error) {
	start := time.Now()
	doc, err := c.next.Get(ctx, credential, path)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "character", "get_character", status)
	c.metrics.RecordDuration(ctx, "character", "get_character", time.Since(start), status)

	return doc, err
}

// sourceUseCaseWithMetrics decorates SourceUseCase with metrics instrumentation.
// Source lookups never fail outward, so every operation records "success".
type sourceUseCaseWithMetrics struct {
	next    SourceUseCase
	metrics metrics.BusinessMetrics
}

// NewSourceUseCaseWithMetrics wraps a SourceUseCase with metrics recording.
func NewSourceUseCaseWithMetrics(useCase SourceUseCase, m metrics.BusinessMetrics) SourceUseCase {
	return &sourceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sourceUseCaseWithMetrics) Sources(ctx context.Context) []domain.Source {
	start := time.Now()
	sources := s.next.Sources(ctx)

	s.metrics.RecordOperation(ctx, "sources", "list_sources", "success")
	s.metrics.RecordDuration(ctx, "sources", "list_sources", time.Since(start), "success")

	return sources
}

func (s *sourceUseCaseWithMetrics) SourceMap(ctx context.Context) domain.SourceMap {
	return domain.BuildSourceMap(s.Sources(ctx))
}

func (s *sourceUseCaseWithMetrics) ListSourceBooks(ctx context.Context) []domain.SourceBook {
	return domain.SourceBooks(s.Sources(ctx))
}
