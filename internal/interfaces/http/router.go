// Package http wires the gin engine, routes, and middleware.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio-inc/folio/internal/infrastructure/auth"
	"github.com/folio-inc/folio/internal/interfaces/http/handlers"
	"github.com/folio-inc/folio/internal/interfaces/http/middleware"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// RouterConfig carries everything the router needs to register routes.
type RouterConfig struct {
	AccountHandler *handlers.AccountHandler
	GitHubHandler  *handlers.GitHubHandler
	QiitaHandler   *handlers.QiitaHandler
	OAuthHandler   *handlers.OAuthHandler
	JWTService     *auth.JWTService
	Logger         logger.Interface
	Mode           string
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// The provider redirects here without a session; the state parameter
	// is the only account correlation.
	api.GET("/oauth/github/callback", cfg.OAuthHandler.GitHubCallback)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(cfg.JWTService, cfg.Logger))
	{
		authed.GET("/account/me", cfg.AccountHandler.GetMe)
		authed.PATCH("/account/me", cfg.AccountHandler.UpdateMe)

		authed.GET("/github/repositories", cfg.GitHubHandler.List)
		authed.POST("/github/repositories/sync", cfg.GitHubHandler.Sync)
		authed.PATCH("/github/repositories/:id/toggle_featured", cfg.GitHubHandler.ToggleFeatured)

		authed.GET("/qiita/articles", cfg.QiitaHandler.List)
		authed.POST("/qiita/articles/sync", cfg.QiitaHandler.Sync)
		authed.PATCH("/qiita/articles/:id/toggle_featured", cfg.QiitaHandler.ToggleFeatured)
	}

	return router
}
