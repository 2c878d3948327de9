// Package api contains the HTTP API handlers for the taxonomy server
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aethra/taxonomy/internal/auth"
	"github.com/aethra/taxonomy/internal/errors"
	"github.com/aethra/taxonomy/internal/store"
	"github.com/gin-gonic/gin"
)

// Handler contains the utility handlers and shared middleware
type Handler struct {
	store *store.Store
	jwt   *auth.JWTService
	log   *slog.Logger
}

// NewHandler creates a new API handler. jwt may be nil, which leaves every route open.
func NewHandler(s *store.Store, jwt *auth.JWTService, log *slog.Logger) *Handler {
	return &Handler{store: s, jwt: jwt, log: log}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

// RequireOperatorMiddleware rejects mutating requests without a valid bearer token.
// Safe methods pass through.
func (h *Handler) RequireOperatorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.jwt == nil {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortWithError(c, h.log, errors.NewUnauthorizedError(""))
			return
		}
		claims, err := h.jwt.ValidateToken(token)
		if err != nil {
			abortWithError(c, h.log, errors.NewUnauthorizedError("invalid or expired token"))
			return
		}
		c.Set("operator", claims.Username)
		c.Next()
	}
}

// =============================================================================
// UTILITY ENDPOINTS
// =============================================================================

// Root identifies the API
// GET /api/
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Category Management API"})
}

// Health returns the health status
// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.log.Warn("health check failed", "error", err)
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// respondError writes err as the JSON error body. Unexpected errors are logged.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	status, body := errors.ToHTTPError(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, body)
}

func abortWithError(c *gin.Context, log *slog.Logger, err error) {
	respondError(c, log, err)
	c.Abort()
}
