// Package api - Router setup
package api

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aethra/taxonomy/internal/auth"
	"github.com/aethra/taxonomy/internal/config"
	"github.com/aethra/taxonomy/internal/errors"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, s *store.Store, log *slog.Logger) *gin.Engine {
	var r *gin.Engine
	if cfg.Server.Mode == gin.DebugMode {
		r = gin.Default()
	} else {
		r = gin.New()
		r.Use(gin.Recovery())
	}

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	// Credentials cannot be combined with a wildcard origin
	if slices.Contains(cfg.CORS.AllowedOrigins, "*") && !cfg.CORS.AllowCredentials {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = slices.DeleteFunc(slices.Clone(cfg.CORS.AllowedOrigins), func(o string) bool {
			return strings.TrimSpace(o) == "*"
		})
	}
	r.Use(cors.New(corsConfig))

	var jwtService *auth.JWTService
	if cfg.Auth.Enabled() {
		jwtService = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpiry)
	}

	handler := NewHandler(s, jwtService, log)
	adminPanelHandler := NewAdminPanelHandler(s, log)

	r.GET("/panel", adminPanelHandler.AdminPanel)

	// ==========================================================================
	// AUTH - only mounted when a signing secret is configured
	// ==========================================================================
	if jwtService != nil {
		authHandler := NewAuthHandler(cfg.Auth, jwtService, log)
		r.POST("/auth/token", authHandler.Token)
	}

	// ==========================================================================
	// TAXONOMY API
	// ==========================================================================
	api := r.Group(models.APIPrefix)
	api.GET("/", handler.Root)
	api.GET("/health", handler.Health)

	api.Use(handler.RequireOperatorMiddleware())
	{
		NewResourceHandler(s.Categories, log).Register(api.Group("/" + models.PathCategories))
		NewResourceHandler(s.CategoryModels, log).Register(api.Group("/" + models.PathCategoryModels))
		NewResourceHandler(s.CategoryVisibility, log).Register(api.Group("/" + models.PathCategoryVisibility))
		NewResourceHandler(s.VisibilityTypes, log).Register(api.Group("/" + models.PathVisibilityTypes))
		NewResourceHandler(s.BusinessFields, log).Register(api.Group("/" + models.PathBusinessFields))
		NewResourceHandler(s.BusinessFieldInstances, log).Register(api.Group("/" + models.PathBusinessFieldInstances))
		NewResourceHandler(s.PricingModels, log).Register(api.Group("/" + models.PathPricingModels))
		NewResourceHandler(s.DisplayTypes, log).Register(api.Group("/" + models.PathDisplayTypes))
		NewResourceHandler(s.SocialHandles, log).
			WithCheck(func(ctx context.Context, h *models.SocialHandle) error {
				taken, err := s.SocialHandles.NameTaken(ctx, h.Name, h.ID)
				if err != nil {
					return err
				}
				if taken {
					return errors.NewConflictError("social handle")
				}
				return nil
			}).
			Register(api.Group("/" + models.PathSocialHandles))
	}

	return r
}
