package platform

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vttbridge/relay/internal/errors"

	"github.com/vttbridge/relay/internal/config"
)

func testClient(t *testing.T, upstream *httptest.Server) *Client {
	t.Helper()
	cfg := &config.Config{
		AuthServiceURL:          upstream.URL + "/v1/cobalt-token",
		CharacterServiceBaseURL: upstream.URL + "/character/v5",
		SiteConfigURL:           upstream.URL + "/api/config/json",
		UpstreamUserAgent:       "vttbridge-relay/test",
		UpstreamTimeout:         2 * time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(cfg, logger)
}

func TestClient_ExchangeToken(t *testing.T) {
	t.Run("success sends credential as cookie only", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "CobaltSession=my-credential", r.Header.Get("Cookie"))
			assert.Empty(t, r.Header.Get("Authorization"))
			assert.Equal(t, "vttbridge-relay/test", r.Header.Get("User-Agent"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			_, _ = w.Write([]byte(`{"token":"bearer-abc"}`))
		}))
		defer upstream.Close()

		token, err := testClient(t, upstream).ExchangeToken(context.Background(), "my-credential")
		require.NoError(t, err)
		assert.Equal(t, "bearer-abc", token)
	})

	t.Run("rejected credential maps to unauthorized", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer upstream.Close()

		_, err := testClient(t, upstream).ExchangeToken(context.Background(), "expired")
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("server error maps to upstream unavailable", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer upstream.Close()

		_, err := testClient(t, upstream).ExchangeToken(context.Background(), "cred")
		assert.True(t, apperrors.Is(err, apperrors.ErrUpstreamUnavailable))
	})

	t.Run("empty token is an upstream failure", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"token":""}`))
		}))
		defer upstream.Close()

		_, err := testClient(t, upstream).ExchangeToken(context.Background(), "cred")
		assert.True(t, apperrors.Is(err, apperrors.ErrUpstreamUnavailable))
	})

	t.Run("timeout maps to upstream timeout", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer upstream.Close()

		client := testClient(t, upstream)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := client.ExchangeToken(ctx, "cred")
		assert.True(t, apperrors.Is(err, apperrors.ErrUpstreamTimeout))
	})
}

func TestClient_FetchSources(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/config/json", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "config endpoint is public")
		_, _ = w.Write([]byte(`{"sources":[
			{"id":1,"name":"Basic Rules","description":"free content"},
			{"id":2,"name":"Player's Handbook"}
		]}`))
	}))
	defer upstream.Close()

	sources, err := testClient(t, upstream).FetchSources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, 1, sources[0].ID)
	assert.Equal(t, "Basic Rules", sources[0].Name)
	require.NotNil(t, sources[0].Description)
	assert.Equal(t, "free content", *sources[0].Description)
	assert.Nil(t, sources[1].Description)
}

func TestClient_FetchItems(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/character/v5/game-data/items", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("sharingSetting"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[
			{"id":1,"name":"Longsword","description":"A sword.","rarity":0,"sources":[{"sourceId":1}]},
			{"id":2,"name":"Torch","snippet":"Burns.","rarity":0,"sourceId":2}
		]}`))
	}))
	defer upstream.Close()

	items, err := testClient(t, upstream).FetchItems(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "A sword.", items[0].Description)
	require.Len(t, items[0].Sources, 1)
	assert.Equal(t, 1, items[0].Sources[0].SourceID)

	// Snippet and legacy sourceId fallbacks are consolidated in normalization.
	assert.Equal(t, "Burns.", items[1].Description)
	require.Len(t, items[1].Sources, 1)
	assert.Equal(t, 2, items[1].Sources[0].SourceID)
	// The original payload is retained for additive marshalling.
	assert.NotEmpty(t, items[1].Raw)
}

func TestClient_FetchClassSpells(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/character/v5/game-data/spells", r.URL.Path)
		assert.Equal(t, "8", r.URL.Query().Get("classId"))
		assert.Equal(t, "20", r.URL.Query().Get("classLevel"))
		_, _ = w.Write([]byte(`{"data":[
			{"definition":{"id":100,"name":"Fireball","level":3,"school":"Evocation",
				"ritual":false,"concentration":false,"components":[1,2,3],
				"componentsDescription":"a tiny ball of bat guano and sulfur",
				"sources":[{"sourceId":1}]}},
			{"id":101,"name":"Detect Magic","level":1,"school":"Divination",
				"ritual":true,"concentration":true,"components":[1,2]}
		]}`))
	}))
	defer upstream.Close()

	spells, err := testClient(t, upstream).FetchClassSpells(context.Background(), "tok", 8, 20)
	require.NoError(t, err)
	require.Len(t, spells, 2)

	fireball := spells[0]
	assert.Equal(t, "Fireball", fireball.Name)
	assert.True(t, fireball.Components.Verbal)
	assert.True(t, fireball.Components.Somatic)
	assert.True(t, fireball.Components.Material)
	assert.Equal(t, "a tiny ball of bat guano and sulfur", fireball.Components.MaterialDescription)

	// Flat records (no definition wrapper) normalize through the same path.
	detect := spells[1]
	assert.Equal(t, "Detect Magic", detect.Name)
	assert.True(t, detect.IsRitual)
	assert.True(t, detect.RequiresConcentration)
	assert.False(t, detect.Components.Material)
}

func TestClient_GetCharacter(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/character/v5/character/12345", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"id":12345,"name":"Mordenkainen"}}`))
	}))
	defer upstream.Close()

	body, err := testClient(t, upstream).GetCharacter(context.Background(), "tok", "character/12345")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"id":12345,"name":"Mordenkainen"}}`, string(body))
}
