// Package api - Operator authentication handlers
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/aethra/taxonomy/internal/auth"
	"github.com/aethra/taxonomy/internal/config"
	"github.com/aethra/taxonomy/internal/errors"
	"github.com/gin-gonic/gin"
)

// Login limits
const (
	maxLoginAttempts = 5
	loginWindow      = 5 * time.Minute
	loginBlock       = 15 * time.Minute
)

// LoginRateLimiter implements rate limiting for login attempts
type LoginRateLimiter struct {
	attempts map[string]*loginAttempt
	mu       sync.Mutex
	now      func() time.Time
}

type loginAttempt struct {
	count     int
	firstTry  time.Time
	blockedAt *time.Time
}

// NewLoginRateLimiter creates a rate limiter. Stale entries are dropped
// lazily on each call.
func NewLoginRateLimiter() *LoginRateLimiter {
	return &LoginRateLimiter{
		attempts: make(map[string]*loginAttempt),
		now:      time.Now,
	}
}

// Allow checks if a login attempt is allowed. It returns the remaining
// attempts in the window, or how long the key stays blocked.
func (rl *LoginRateLimiter) Allow(key string) (bool, int, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	attempt, exists := rl.attempts[key]
	if !exists {
		rl.attempts[key] = &loginAttempt{count: 1, firstTry: now}
		return true, maxLoginAttempts - 1, 0
	}

	if attempt.blockedAt != nil {
		if blocked := now.Sub(*attempt.blockedAt); blocked < loginBlock {
			return false, 0, loginBlock - blocked
		}
		attempt.count = 1
		attempt.firstTry = now
		attempt.blockedAt = nil
		return true, maxLoginAttempts - 1, 0
	}

	if now.Sub(attempt.firstTry) > loginWindow {
		attempt.count = 1
		attempt.firstTry = now
		return true, maxLoginAttempts - 1, 0
	}

	attempt.count++
	if attempt.count > maxLoginAttempts {
		attempt.blockedAt = &now
		return false, 0, loginBlock
	}
	return true, maxLoginAttempts - attempt.count, 0
}

// Reset resets the attempts for a key (on successful login)
func (rl *LoginRateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, key)
}

// sweep removes entries older than twice the block duration
func (rl *LoginRateLimiter) sweep(now time.Time) {
	for key, attempt := range rl.attempts {
		if now.Sub(attempt.firstTry) > 2*loginBlock {
			delete(rl.attempts, key)
		}
	}
}

// AuthHandler issues operator tokens
type AuthHandler struct {
	cfg         config.AuthConfig
	jwtService  *auth.JWTService
	rateLimiter *LoginRateLimiter
	log         *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg config.AuthConfig, jwtService *auth.JWTService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:         cfg,
		jwtService:  jwtService,
		rateLimiter: NewLoginRateLimiter(),
		log:         log,
	}
}

// TokenRequest represents operator credentials
type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Token authenticates the operator and returns an access token
// POST /auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, errors.NewBadRequestError("username and password are required"))
		return
	}

	key := c.ClientIP()
	allowed, _, retryAfter := h.rateLimiter.Allow(key)
	if !allowed {
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondError(c, h.log, errors.NewTooManyRequestsError("too many login attempts, please wait before trying again"))
		return
	}

	if h.jwtService == nil || h.cfg.AdminPasswordHash == "" ||
		req.Username != h.cfg.AdminUsername || !auth.CheckPassword(req.Password, h.cfg.AdminPasswordHash) {
		h.log.Warn("operator login failed", "username", req.Username, "ip", key)
		respondError(c, h.log, errors.NewUnauthorizedError("invalid credentials"))
		return
	}

	token, err := h.jwtService.GenerateToken(req.Username)
	if err != nil {
		respondError(c, h.log, errors.NewInternalError(err))
		return
	}
	h.rateLimiter.Reset(key)
	h.log.Info("operator logged in", "username", req.Username)
	c.JSON(http.StatusOK, token)
}
