// Package http provides HTTP handlers for session-credential operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vttbridge/relay/internal/auth/http/dto"
	"github.com/vttbridge/relay/internal/auth/usecase"
	"github.com/vttbridge/relay/internal/httputil"
	customValidation "github.com/vttbridge/relay/internal/validation"
)

// AuthHandler handles HTTP requests for credential validation.
type AuthHandler struct {
	tokenUseCase usecase.TokenUseCase
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(tokenUseCase usecase.TokenUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// ValidateCookieHandler checks a session credential against the upstream
// auth service. POST /api/validate-cookie.
// Returns 200 OK with the validation outcome; a rejected credential is a
// valid:false body, not an error status.
func (h *AuthHandler) ValidateCookieHandler(c *gin.Context) {
	var req dto.ValidateCookieRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	status, err := h.tokenUseCase.ValidateCredential(c.Request.Context(), req.CobaltCookie)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, status)
}
