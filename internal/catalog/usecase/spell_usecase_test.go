package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authservice "github.com/vttbridge/relay/internal/auth/service"
	"github.com/vttbridge/relay/internal/cache"
	"github.com/vttbridge/relay/internal/catalog/domain"
	"github.com/vttbridge/relay/internal/catalog/usecase/mocks"
	"github.com/vttbridge/relay/internal/errors"
)

type spellFixture struct {
	fetcher *mocks.MockSpellFetcher
	tokens  *mocks.MockBearerTokenProvider
	sources *mocks.MockSourceUseCase
	cache   *cache.Cache[*domain.SpellResult]
	uc      SpellUseCase
}

func newSpellFixture() *spellFixture {
	f := &spellFixture{
		fetcher: new(mocks.MockSpellFetcher),
		tokens:  new(mocks.MockBearerTokenProvider),
		sources: new(mocks.MockSourceUseCase),
		cache: cache.New("spell-results", time.Hour, cache.WithEmptyCheck(func(r *domain.SpellResult) bool {
			return r == nil || len(r.Spells) == 0
		})),
	}
	f.uc = NewSpellUseCase(f.fetcher, f.sources, f.tokens, authservice.NewCredentialService(), f.cache, testLogger())
	return f
}

func (f *spellFixture) stubSources(sources []domain.Source) {
	f.sources.On("SourceMap", mock.Anything).Return(domain.BuildSourceMap(sources))
	f.sources.On("Sources", mock.Anything).Return(sources)
}

// stubEmptyClasses makes every class except the listed ids return no spells.
func (f *spellFixture) stubEmptyClasses(except map[int]bool) {
	for _, class := range domain.SpellcastingClasses {
		if except[class.ID] {
			continue
		}
		f.fetcher.On("FetchClassSpells", mock.Anything, "bearer", class.ID, class.MaxLevel).
			Return([]domain.Spell{}, nil).Once()
	}
}

func namedSpell(name string, sourceIDs ...int) domain.Spell {
	refs := make([]domain.SourceReference, len(sourceIDs))
	for i, sid := range sourceIDs {
		refs[i] = domain.SourceReference{SourceID: sid}
	}
	return domain.Spell{Name: name, Level: 1, School: "Evocation", Sources: refs}
}

func TestSpellUseCaseFetchAllSpells(t *testing.T) {
	ctx := context.Background()
	catalog := []domain.Source{
		{ID: 2, Name: "Player's Handbook"},
	}

	t.Run("fans out per class and merges by name", func(t *testing.T) {
		f := newSpellFixture()
		f.stubSources(catalog)
		f.tokens.On("GetBearerToken", mock.Anything, "cookie").Return("bearer", nil).Once()
		// Bard (id 1) and Wizard (id 8) both know Fireball; ids differ per
		// class context, so the merge must key on the name.
		f.fetcher.On("FetchClassSpells", mock.Anything, "bearer", 1, 20).
			Return([]domain.Spell{namedSpell("Fireball", 2)}, nil).Once()
		f.fetcher.On("FetchClassSpells", mock.Anything, "bearer", 8, 20).
			Return([]domain.Spell{namedSpell("Fireball", 2), namedSpell("Mage Hand", 2)}, nil).Once()
		f.stubEmptyClasses(map[int]bool{1: true, 8: true})

		result, err := f.uc.FetchAllSpells(ctx, "cookie", nil, false)
		require.NoError(t, err)
		require.Len(t, result.Spells, 2)

		assert.Equal(t, "Fireball", result.Spells[0].Name)
		assert.Equal(t, []string{"Bard", "Wizard"}, result.Spells[0].AvailableToClasses)
		assert.Equal(t, "Player's Handbook", result.Spells[0].SourceBook)
		assert.Equal(t, []string{"Wizard"}, result.Spells[1].AvailableToClasses)
		assert.True(t, result.OwnershipBySourceID[2])
		f.fetcher.AssertExpectations(t)
	})

	t.Run("one failed class degrades instead of failing", func(t *testing.T) {
		f := newSpellFixture()
		f.stubSources(catalog)
		f.tokens.On("GetBearerToken", mock.Anything, "cookie").Return("bearer", nil).Once()
		f.fetcher.On("FetchClassSpells", mock.Anything, "bearer", 1, 20).
			Return(nil, errors.ErrUpstreamTimeout).Once()
		f.fetcher.On("FetchClassSpells", mock.Anything, "bearer", 8, 20).
			Return([]domain.Spell{namedSpell("Mage Hand", 2)}, nil).Once()
		f.stubEmptyClasses(map[int]bool{1: true, 8: true})

		result, err := f.uc.FetchAllSpells(ctx, "cookie", nil, false)
		require.NoError(t, err)
		require.Len(t, result.Spells, 1)
		assert.Equal(t, "Mage Hand", result.Spells[0].Name)
	})

	t.Run("all classes failing is an upstream error", func(t *testing.T) {
		f := newSpellFixture()
		f.stubSources(catalog)
		f.tokens.On("GetBearerToken", mock.Anything, "cookie").Return("bearer", nil).Once()
		for _, class := range domain.SpellcastingClasses {
			f.fetcher.On("FetchClassSpells", mock.Anything, "bearer", class.ID, class.MaxLevel).
				Return(nil, errors.ErrUpstreamUnavailable).Once()
		}

		_, err := f.uc.FetchAllSpells(ctx, "cookie", nil, false)
		assert.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
	})

	t.Run("second call is served from cache", func(t *testing.T) {
		f := newSpellFixture()
		f.stubSources(catalog)
		f.tokens.On("GetBearerToken", mock.Anything, "cookie").Return("bearer", nil).Once()
		f.fetcher.On("FetchClassSpells", mock.Anything, "bearer", 1, 20).
			Return([]domain.Spell{namedSpell("Fireball", 2)}, nil).Once()
		f.stubEmptyClasses(map[int]bool{1: true})

		first, err := f.uc.FetchAllSpells(ctx, "cookie", nil, false)
		require.NoError(t, err)
		second, err := f.uc.FetchAllSpells(ctx, "cookie", nil, false)
		require.NoError(t, err)
		assert.Same(t, first, second)
		f.fetcher.AssertExpectations(t)
	})

	t.Run("playtest spells are dropped unconditionally", func(t *testing.T) {
		f := newSpellFixture()
		f.stubSources(catalog)
		f.tokens.On("GetBearerToken", mock.Anything, "cookie").Return("bearer", nil).Once()
		f.fetcher.On("FetchClassSpells", mock.Anything, "bearer", 1, 20).
			Return([]domain.Spell{
				namedSpell("Fireball", 2),
				namedSpell("Playtest Bolt", 39),
			}, nil).Once()
		f.stubEmptyClasses(map[int]bool{1: true})

		result, err := f.uc.FetchAllSpells(ctx, "cookie", []int{39, 2}, false)
		require.NoError(t, err)
		require.Len(t, result.Spells, 1)
		assert.Equal(t, "Fireball", result.Spells[0].Name)
		// Ownership still reflects the pre-filter merge.
		assert.True(t, result.OwnershipBySourceID[39])
	})

	t.Run("nameless entries are counted, not returned", func(t *testing.T) {
		f := newSpellFixture()
		f.stubSources(catalog)
		f.tokens.On("GetBearerToken", mock.Anything, "cookie").Return("bearer", nil).Once()
		f.fetcher.On("FetchClassSpells", mock.Anything, "bearer", 1, 20).
			Return([]domain.Spell{namedSpell("Fireball", 2), namedSpell("", 2)}, nil).Once()
		f.stubEmptyClasses(map[int]bool{1: true})

		result, err := f.uc.FetchAllSpells(ctx, "cookie", nil, false)
		require.NoError(t, err)
		assert.Len(t, result.Spells, 1)
		assert.Equal(t, 1, result.SkippedNameless)
	})

	t.Run("token failure propagates before any fan-out", func(t *testing.T) {
		f := newSpellFixture()
		f.stubSources(catalog)
		f.tokens.On("GetBearerToken", mock.Anything, "bad").Return("", errors.ErrUnauthorized).Once()

		_, err := f.uc.FetchAllSpells(ctx, "bad", nil, false)
		assert.ErrorIs(t, err, errors.ErrUnauthorized)
		f.fetcher.AssertNotCalled(t, "FetchClassSpells", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
