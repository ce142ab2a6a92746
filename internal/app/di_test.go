package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vttbridge/relay/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:              "localhost",
		ServerPort:              3000,
		LogLevel:                "error",
		AuthServiceURL:          "http://localhost:9999/v1/cobalt-token",
		CharacterServiceBaseURL: "http://localhost:9999/character/v5",
		SiteConfigURL:           "http://localhost:9999/api/config/json",
		UpstreamUserAgent:       "test-relay/0.0",
		MetricsEnabled:          false,
		MetricsNamespace:        "relay",
	}
}

func TestContainer_LazyInitialization(t *testing.T) {
	container := NewContainer(testConfig())

	logger := container.Logger()
	require.NotNil(t, logger)
	assert.Same(t, logger, container.Logger())

	client := container.PlatformClient()
	require.NotNil(t, client)
	assert.Same(t, client, container.PlatformClient())
}

func TestContainer_UseCases(t *testing.T) {
	container := NewContainer(testConfig())

	tokenUC, err := container.TokenUseCase()
	require.NoError(t, err)
	require.NotNil(t, tokenUC)

	itemUC, err := container.ItemUseCase()
	require.NoError(t, err)
	require.NotNil(t, itemUC)

	spellUC, err := container.SpellUseCase()
	require.NoError(t, err)
	require.NotNil(t, spellUC)

	characterUC, err := container.CharacterUseCase()
	require.NoError(t, err)
	require.NotNil(t, characterUC)
}

func TestContainer_HTTPServer(t *testing.T) {
	container := NewContainer(testConfig())

	server, err := container.HTTPServer()
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.NotNil(t, server.GetHandler())
}

func TestContainer_CacheStats(t *testing.T) {
	container := NewContainer(testConfig())

	stats := container.CacheStats()
	require.Len(t, stats, 4)

	names := make([]string, len(stats))
	for i, s := range stats {
		names[i] = s.Name
	}
	assert.ElementsMatch(t, []string{"tokens", "sources", "item-results", "spell-results"}, names)
}

func TestContainer_MetricsDisabled(t *testing.T) {
	container := NewContainer(testConfig())

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.Nil(t, metricsServer)

	bm, err := container.BusinessMetrics()
	require.NoError(t, err)
	assert.NotNil(t, bm)
}

func TestContainer_MetricsEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true
	cfg.MetricsPort = 3001
	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	require.NotNil(t, provider)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	require.NotNil(t, metricsServer)

	require.NoError(t, container.Shutdown(context.Background()))
}

func TestContainer_Shutdown(t *testing.T) {
	container := NewContainer(testConfig())

	_, err := container.HTTPServer()
	require.NoError(t, err)

	assert.NoError(t, container.Shutdown(context.Background()))
}
