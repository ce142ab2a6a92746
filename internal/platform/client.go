package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	apperrors "github.com/vttbridge/relay/internal/errors"

	"github.com/vttbridge/relay/internal/catalog/domain"
	"github.com/vttbridge/relay/internal/config"
)

// sharingSetting is the platform's query flag selecting shared content.
const sharingSetting = 2

// Client calls the external platform over HTTP. All calls carry the relay's
// identifying user agent and a JSON accept header; authenticated calls carry
// Authorization: Bearer, never the raw session credential.
type Client struct {
	httpClient       *http.Client
	authServiceURL   string
	characterBaseURL string
	siteConfigURL    string
	userAgent        string
	logger           *slog.Logger
}

// NewClient constructs a platform client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient:       &http.Client{Timeout: cfg.UpstreamTimeout},
		authServiceURL:   cfg.AuthServiceURL,
		characterBaseURL: strings.TrimRight(cfg.CharacterServiceBaseURL, "/"),
		siteConfigURL:    cfg.SiteConfigURL,
		userAgent:        cfg.UpstreamUserAgent,
		logger:           logger,
	}
}

// ExchangeToken trades a session credential for a short-lived bearer token.
// The credential travels only in the cookie header of this one call.
func (c *Client) ExchangeToken(ctx context.Context, credential string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authServiceURL, nil)
	if err != nil {
		return "", apperrors.Wrap(err, "building token exchange request")
	}
	c.setCommonHeaders(req)
	req.Header.Set("Cookie", "CobaltSession="+credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err, "token exchange")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", apperrors.Wrap(apperrors.ErrUnauthorized, "platform rejected session credential")
	default:
		return "", apperrors.Wrapf(apperrors.ErrUpstreamUnavailable, "token exchange returned %d", resp.StatusCode)
	}

	var payload tokenPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apperrors.Wrap(apperrors.ErrUpstreamUnavailable, "decoding token exchange response")
	}
	if payload.Token == "" {
		return "", apperrors.Wrap(apperrors.ErrUpstreamUnavailable, "token exchange returned empty token")
	}
	return payload.Token, nil
}

// FetchSources retrieves the platform's source-book catalog. No auth required.
func (c *Client) FetchSources(ctx context.Context) ([]domain.Source, error) {
	var payload siteConfigPayload
	if err := c.getJSON(ctx, c.siteConfigURL, "", &payload); err != nil {
		return nil, apperrors.Wrap(err, "fetching site config")
	}

	sources := make([]domain.Source, 0, len(payload.Sources))
	for _, raw := range payload.Sources {
		sources = append(sources, raw.normalize())
	}
	return sources, nil
}

// FetchItems retrieves the full shared item catalog as normalized records.
func (c *Client) FetchItems(ctx context.Context, bearerToken string) ([]domain.Item, error) {
	url := fmt.Sprintf("%s/game-data/items?sharingSetting=%d", c.characterBaseURL, sharingSetting)

	var payload dataPayload
	if err := c.getJSON(ctx, url, bearerToken, &payload); err != nil {
		return nil, apperrors.Wrap(err, "fetching items")
	}

	items := make([]domain.Item, 0, len(payload.Data))
	for _, raw := range payload.Data {
		item, err := normalizeItem(raw)
		if err != nil {
			c.logger.Warn("skipping malformed item record", slog.Any("error", err))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// FetchClassSpells retrieves one class's complete spell list as normalized
// records. classLevel should be the class's maximum level so a single call
// returns everything the class can ever learn.
func (c *Client) FetchClassSpells(
	ctx context.Context,
	bearerToken string,
	classID, classLevel int,
) ([]domain.Spell, error) {
	url := fmt.Sprintf(
		"%s/game-data/spells?classId=%d&classLevel=%d&sharingSetting=%d",
		c.characterBaseURL, classID, classLevel, sharingSetting,
	)

	var payload dataPayload
	if err := c.getJSON(ctx, url, bearerToken, &payload); err != nil {
		return nil, apperrors.Wrapf(err, "fetching spells for class %d", classID)
	}

	spells := make([]domain.Spell, 0, len(payload.Data))
	for _, raw := range payload.Data {
		spell, err := normalizeSpell(raw)
		if err != nil {
			c.logger.Warn("skipping malformed spell record",
				slog.Int("class_id", classID),
				slog.Any("error", err))
			continue
		}
		spells = append(spells, spell)
	}
	return spells, nil
}

// GetCharacter proxies an authenticated GET against the character service and
// returns the raw JSON body unchanged.
func (c *Client) GetCharacter(ctx context.Context, bearerToken, path string) (json.RawMessage, error) {
	url := c.characterBaseURL + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "building character request")
	}
	c.setCommonHeaders(req)
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err, "character fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus(resp.StatusCode, "character fetch"); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUpstreamUnavailable, "reading character response")
	}
	return json.RawMessage(body), nil
}

// getJSON issues an authenticated (or anonymous when bearerToken is empty)
// GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, url, bearerToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.setCommonHeaders(req)
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err, "platform request")
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus(resp.StatusCode, "platform request"); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrUpstreamUnavailable, "decoding platform response")
	}
	return nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
}

// classifyTransportError maps transport failures to the domain taxonomy.
// Timeouts are distinguishable so the relay can answer 504 instead of 500.
func classifyTransportError(err error, operation string) error {
	if apperrors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrUpstreamTimeout, operation)
	}
	var netErr net.Error
	if apperrors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Wrap(apperrors.ErrUpstreamTimeout, operation)
	}
	return apperrors.Wrapf(apperrors.ErrUpstreamUnavailable, "%s: %v", operation, err)
}

// classifyStatus maps non-2xx responses to the domain taxonomy.
func classifyStatus(statusCode int, operation string) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return apperrors.Wrap(apperrors.ErrUnauthorized, operation)
	default:
		return apperrors.Wrapf(apperrors.ErrUpstreamUnavailable, "%s returned %d", operation, statusCode)
	}
}
