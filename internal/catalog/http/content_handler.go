// Package http provides HTTP handlers for catalog content operations.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vttbridge/relay/internal/catalog/domain"
	"github.com/vttbridge/relay/internal/catalog/http/dto"
	"github.com/vttbridge/relay/internal/catalog/usecase"
	apperrors "github.com/vttbridge/relay/internal/errors"
	"github.com/vttbridge/relay/internal/httputil"
	customValidation "github.com/vttbridge/relay/internal/validation"
)

// ContentHandler handles HTTP requests for catalog content.
type ContentHandler struct {
	itemUseCase      usecase.ItemUseCase
	spellUseCase     usecase.SpellUseCase
	sourceUseCase    usecase.SourceUseCase
	characterUseCase usecase.CharacterUseCase
	logger           *slog.Logger
}

// NewContentHandler creates a new content handler with required dependencies.
func NewContentHandler(
	itemUseCase usecase.ItemUseCase,
	spellUseCase usecase.SpellUseCase,
	sourceUseCase usecase.SourceUseCase,
	characterUseCase usecase.CharacterUseCase,
	logger *slog.Logger,
) *ContentHandler {
	return &ContentHandler{
		itemUseCase:      itemUseCase,
		spellUseCase:     spellUseCase,
		sourceUseCase:    sourceUseCase,
		characterUseCase: characterUseCase,
		logger:           logger,
	}
}

// ContentHandler fetches an enhanced content array.
// POST /api/content/*type with body {cobaltCookie, bustCache?, sourceBookIds?}.
// Supported types are "items" and "spells"; "sources" has no upstream endpoint
// and callers are directed to their static fallback bundle.
func (h *ContentHandler) ContentHandler(c *gin.Context) {
	contentType := strings.TrimPrefix(c.Param("type"), "/")

	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	switch contentType {
	case "items":
		result, err := h.itemUseCase.FetchAllItems(c.Request.Context(), req.CobaltCookie, req.SourceBookIDs, req.BustCache)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, result.Items)

	case "spells":
		result, err := h.spellUseCase.FetchAllSpells(c.Request.Context(), req.CobaltCookie, req.SourceBookIDs, req.BustCache)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, result.Spells)

	case "sources":
		httputil.HandleErrorGin(c, apperrors.Wrap(
			apperrors.ErrUnsupportedContent,
			"sources have no upstream endpoint, use the bundled source list",
		), h.logger)

	default:
		httputil.HandleErrorGin(c, apperrors.Wrapf(
			apperrors.ErrUnsupportedContent,
			"unknown content type %q", contentType,
		), h.logger)
	}
}

// SourceBooksHandler lists the known source books sorted by name.
// GET /api/source-books.
func (h *ContentHandler) SourceBooksHandler(c *gin.Context) {
	books := h.sourceUseCase.ListSourceBooks(c.Request.Context())
	if books == nil {
		books = []domain.SourceBook{}
	}
	c.JSON(http.StatusOK, dto.SourceBooksResponse{SourceBooks: books})
}

// CharacterHandler proxies an authenticated character-service read.
// POST /api/character/*path with body {cobaltCookie}.
func (h *ContentHandler) CharacterHandler(c *gin.Context) {
	path := c.Param("path")

	var req dto.CharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	doc, err := h.characterUseCase.Get(c.Request.Context(), req.CobaltCookie, path)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusOK, "application/json", doc)
}
