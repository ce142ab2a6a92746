// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authHttp "github.com/vttbridge/relay/internal/auth/http"
	authService "github.com/vttbridge/relay/internal/auth/service"
	authUseCase "github.com/vttbridge/relay/internal/auth/usecase"
	"github.com/vttbridge/relay/internal/cache"
	"github.com/vttbridge/relay/internal/catalog/domain"
	catalogHttp "github.com/vttbridge/relay/internal/catalog/http"
	catalogUseCase "github.com/vttbridge/relay/internal/catalog/usecase"
	"github.com/vttbridge/relay/internal/config"
	"github.com/vttbridge/relay/internal/http"
	"github.com/vttbridge/relay/internal/metrics"
	"github.com/vttbridge/relay/internal/platform"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	platformClient  *platform.Client
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Caches
	tokenCache       *cache.Cache[string]
	sourceCache      *cache.Cache[[]domain.Source]
	itemResultCache  *cache.Cache[*domain.ItemResult]
	spellResultCache *cache.Cache[*domain.SpellResult]

	// Use Cases
	credentialService authService.CredentialService
	tokenUseCase      authUseCase.TokenUseCase
	sourceUseCase     catalogUseCase.SourceUseCase
	itemUseCase       catalogUseCase.ItemUseCase
	spellUseCase      catalogUseCase.SpellUseCase
	characterUseCase  catalogUseCase.CharacterUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	platformClientInit    sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	cachesInit            sync.Once
	credentialServiceInit sync.Once
	tokenUseCaseInit      sync.Once
	sourceUseCaseInit     sync.Once
	itemUseCaseInit       sync.Once
	spellUseCaseInit      sync.Once
	characterUseCaseInit  sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// PlatformClient returns the outbound platform HTTP client.
func (c *Container) PlatformClient() *platform.Client {
	c.platformClientInit.Do(func() {
		c.platformClient = platform.NewClient(c.config, c.Logger())
	})
	return c.platformClient
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op implementation
// is returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		c.businessMetrics = bm
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// initCaches constructs every cache with its configured TTL. Empty payloads
// are rejected at the cache layer so a degraded fetch can never shadow a later
// successful one.
func (c *Container) initCaches() {
	c.cachesInit.Do(func() {
		c.tokenCache = cache.NewStringCache("tokens", c.config.TokenCacheTTL)
		c.sourceCache = cache.NewSliceCache[domain.Source]("sources", c.config.SourceCacheTTL)
		c.itemResultCache = cache.New("item-results", c.config.ItemCacheTTL,
			cache.WithEmptyCheck(func(r *domain.ItemResult) bool {
				return r == nil || len(r.Items) == 0
			}))
		c.spellResultCache = cache.New("spell-results", c.config.SpellCacheTTL,
			cache.WithEmptyCheck(func(r *domain.SpellResult) bool {
				return r == nil || len(r.Spells) == 0
			}))
	})
}

// CacheStats reports the stats of every cache, for the health endpoint.
func (c *Container) CacheStats() []cache.Stats {
	c.initCaches()
	return []cache.Stats{
		c.tokenCache.Stats(),
		c.sourceCache.Stats(),
		c.itemResultCache.Stats(),
		c.spellResultCache.Stats(),
	}
}

// ClearCaches removes every cached entry. Used by CLI commands that must
// observe fresh upstream state.
func (c *Container) ClearCaches() {
	c.initCaches()
	c.tokenCache.Clear()
	c.sourceCache.Clear()
	c.itemResultCache.Clear()
	c.spellResultCache.Clear()
}

// CredentialService returns the credential hashing service.
func (c *Container) CredentialService() authService.CredentialService {
	c.credentialServiceInit.Do(func() {
		c.credentialService = authService.NewCredentialService()
	})
	return c.credentialService
}

// TokenUseCase returns the token exchange use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	c.tokenUseCaseInit.Do(func() {
		c.initCaches()
		uc := authUseCase.NewTokenUseCase(
			c.PlatformClient(),
			c.CredentialService(),
			c.tokenCache,
			c.Logger(),
		)
		bm, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
			return
		}
		c.tokenUseCase = authUseCase.NewTokenUseCaseWithMetrics(uc, bm)
	})
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// SourceUseCase returns the source registry use case.
func (c *Container) SourceUseCase() (catalogUseCase.SourceUseCase, error) {
	c.sourceUseCaseInit.Do(func() {
		c.initCaches()
		uc := catalogUseCase.NewSourceUseCase(c.PlatformClient(), c.sourceCache, c.Logger())
		bm, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["sourceUseCase"] = err
			return
		}
		c.sourceUseCase = catalogUseCase.NewSourceUseCaseWithMetrics(uc, bm)
	})
	if storedErr, exists := c.initErrors["sourceUseCase"]; exists {
		return nil, storedErr
	}
	return c.sourceUseCase, nil
}

// ItemUseCase returns the item fetching use case.
func (c *Container) ItemUseCase() (catalogUseCase.ItemUseCase, error) {
	var err error
	c.itemUseCaseInit.Do(func() {
		c.initCaches()
		var sources catalogUseCase.SourceUseCase
		var tokens authUseCase.TokenUseCase
		var bm metrics.BusinessMetrics

		if sources, err = c.SourceUseCase(); err == nil {
			if tokens, err = c.TokenUseCase(); err == nil {
				bm, err = c.BusinessMetrics()
			}
		}
		if err != nil {
			c.initErrors["itemUseCase"] = err
			return
		}

		uc := catalogUseCase.NewItemUseCase(
			c.PlatformClient(),
			sources,
			tokens,
			c.CredentialService(),
			c.itemResultCache,
			c.Logger(),
		)
		c.itemUseCase = catalogUseCase.NewItemUseCaseWithMetrics(uc, bm)
	})
	if storedErr, exists := c.initErrors["itemUseCase"]; exists {
		return nil, storedErr
	}
	return c.itemUseCase, nil
}

// SpellUseCase returns the spell fetching use case.
func (c *Container) SpellUseCase() (catalogUseCase.SpellUseCase, error) {
	var err error
	c.spellUseCaseInit.Do(func() {
		c.initCaches()
		var sources catalogUseCase.SourceUseCase
		var tokens authUseCase.TokenUseCase
		var bm metrics.BusinessMetrics

		if sources, err = c.SourceUseCase(); err == nil {
			if tokens, err = c.TokenUseCase(); err == nil {
				bm, err = c.BusinessMetrics()
			}
		}
		if err != nil {
			c.initErrors["spellUseCase"] = err
			return
		}

		uc := catalogUseCase.NewSpellUseCase(
			c.PlatformClient(),
			sources,
			tokens,
			c.CredentialService(),
			c.spellResultCache,
			c.Logger(),
		)
		c.spellUseCase = catalogUseCase.NewSpellUseCaseWithMetrics(uc, bm)
	})
	if storedErr, exists := c.initErrors["spellUseCase"]; exists {
		return nil, storedErr
	}
	return c.spellUseCase, nil
}

// CharacterUseCase returns the character proxy use case.
func (c *Container) CharacterUseCase() (catalogUseCase.CharacterUseCase, error) {
	var err error
	c.characterUseCaseInit.Do(func() {
		var tokens authUseCase.TokenUseCase
		var bm metrics.BusinessMetrics

		if tokens, err = c.TokenUseCase(); err == nil {
			bm, err = c.BusinessMetrics()
		}
		if err != nil {
			c.initErrors["characterUseCase"] = err
			return
		}

		uc := catalogUseCase.NewCharacterUseCase(
			c.PlatformClient(),
			tokens,
			c.CredentialService(),
			c.Logger(),
		)
		c.characterUseCase = catalogUseCase.NewCharacterUseCaseWithMetrics(uc, bm)
	})
	if storedErr, exists := c.initErrors["characterUseCase"]; exists {
		return nil, storedErr
	}
	return c.characterUseCase, nil
}

// HTTPServer returns the relay API server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, err
	}
	itemUseCase, err := c.ItemUseCase()
	if err != nil {
		return nil, err
	}
	spellUseCase, err := c.SpellUseCase()
	if err != nil {
		return nil, err
	}
	sourceUseCase, err := c.SourceUseCase()
	if err != nil {
		return nil, err
	}
	characterUseCase, err := c.CharacterUseCase()
	if err != nil {
		return nil, err
	}
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	authHandler := authHttp.NewAuthHandler(tokenUseCase, c.Logger())
	contentHandler := catalogHttp.NewContentHandler(
		itemUseCase,
		spellUseCase,
		sourceUseCase,
		characterUseCase,
		c.Logger(),
	)

	return http.NewServer(
		c.config,
		c.Logger(),
		authHandler,
		contentHandler,
		provider,
		c.CacheStats,
	), nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}
