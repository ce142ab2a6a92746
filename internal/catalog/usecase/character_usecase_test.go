package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authservice "github.com/vttbridge/relay/internal/auth/service"
	"github.com/vttbridge/relay/internal/catalog/usecase/mocks"
	"github.com/vttbridge/relay/internal/errors"
)

func TestCharacterUseCaseGet(t *testing.T) {
	ctx := context.Background()

	t.Run("proxies the raw document", func(t *testing.T) {
		fetcher := new(mocks.MockCharacterFetcher)
		tokens := new(mocks.MockBearerTokenProvider)
		tokens.On("GetBearerToken", mock.Anything, "cookie").Return("bearer", nil).Once()
		doc := json.RawMessage(`{"id":123,"name":"Melf"}`)
		fetcher.On("GetCharacter", mock.Anything, "bearer", "/character/123").Return(doc, nil).Once()

		uc := NewCharacterUseCase(fetcher, tokens, authservice.NewCredentialService(), testLogger())

		got, err := uc.Get(ctx, "cookie", "/character/123")
		require.NoError(t, err)
		assert.Equal(t, doc, got)
		fetcher.AssertExpectations(t)
	})

	t.Run("token failure short-circuits", func(t *testing.T) {
		fetcher := new(mocks.MockCharacterFetcher)
		tokens := new(mocks.MockBearerTokenProvider)
		tokens.On("GetBearerToken", mock.Anything, "bad").Return("", errors.ErrUnauthorized).Once()

		uc := NewCharacterUseCase(fetcher, tokens, authservice.NewCredentialService(), testLogger())

		_, err := uc.Get(ctx, "bad", "/character/123")
		assert.ErrorIs(t, err, errors.ErrUnauthorized)
		fetcher.AssertNotCalled(t, "GetCharacter", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fetch failure propagates", func(t *testing.T) {
		fetcher := new(mocks.MockCharacterFetcher)
		tokens := new(mocks.MockBearerTokenProvider)
		tokens.On("GetBearerToken", mock.Anything, "cookie").Return("bearer", nil).Once()
		fetcher.On("GetCharacter", mock.Anything, "bearer", "/character/999").
			Return(nil, errors.ErrUpstreamUnavailable).Once()

		uc := NewCharacterUseCase(fetcher, tokens, authservice.NewCredentialService(), testLogger())

		_, err := uc.Get(ctx, "cookie", "/character/999")
		assert.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
	})
}

func TestResultCacheKey(t *testing.T) {
	assert.Equal(t, "abc", resultCacheKey("abc", nil))
	assert.Equal(t, "abc:2,5,7", resultCacheKey("abc", []int{7, 2, 5}))
	assert.Equal(t,
		resultCacheKey("abc", []int{5, 2}),
		resultCacheKey("abc", []int{2, 5}),
	)
}
