package usecase

import (
	"context"
	"log/slog"

	"github.com/vttbridge/relay/internal/cache"
	"github.com/vttbridge/relay/internal/catalog/domain"
)

const sourceCacheKey = "site-config"

type sourceUseCase struct {
	fetcher SourceFetcher
	cache   *cache.Cache[[]domain.Source]
	logger  *slog.Logger
}

// NewSourceUseCase returns a SourceUseCase backed by the given fetcher and
// long-TTL cache.
func NewSourceUseCase(fetcher SourceFetcher, sourceCache *cache.Cache[[]domain.Source], logger *slog.Logger) SourceUseCase {
	return &sourceUseCase{
		fetcher: fetcher,
		cache:   sourceCache,
		logger:  logger,
	}
}

func (s *sourceUseCase) Sources(ctx context.Context) []domain.Source {
	if sources, ok := s.cache.Get(sourceCacheKey); ok {
		return sources
	}

	sources, err := s.fetcher.FetchSources(ctx)
	if err != nil {
		s.logger.Warn("source catalog fetch failed, using empty catalog",
			slog.String("error", err.Error()),
		)
		return nil
	}

	s.cache.Add(sourceCacheKey, sources)
	s.logger.Info("source catalog loaded",
		slog.Int("sources", len(sources)),
	)
	return sources
}

func (s *sourceUseCase) SourceMap(ctx context.Context) domain.SourceMap {
	return domain.BuildSourceMap(s.Sources(ctx))
}

func (s *sourceUseCase) ListSourceBooks(ctx context.Context) []domain.SourceBook {
	return domain.SourceBooks(s.Sources(ctx))
}
