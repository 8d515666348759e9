// Package server implements the server CLI command.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	accountusecases "github.com/folio-inc/folio/internal/application/account/usecases"
	githubusecases "github.com/folio-inc/folio/internal/application/github/usecases"
	oauthusecases "github.com/folio-inc/folio/internal/application/oauth/usecases"
	qiitausecases "github.com/folio-inc/folio/internal/application/qiita/usecases"
	"github.com/folio-inc/folio/internal/infrastructure/auth"
	"github.com/folio-inc/folio/internal/infrastructure/config"
	"github.com/folio-inc/folio/internal/infrastructure/database"
	githubclient "github.com/folio-inc/folio/internal/infrastructure/github"
	"github.com/folio-inc/folio/internal/infrastructure/migration"
	qiitaclient "github.com/folio-inc/folio/internal/infrastructure/qiita"
	"github.com/folio-inc/folio/internal/infrastructure/repository"
	httpinterface "github.com/folio-inc/folio/internal/interfaces/http"
	"github.com/folio-inc/folio/internal/interfaces/http/handlers"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/services/markdown"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the folio HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			logger.Warn("auto-migration is enabled in production environment")
		}
		if err := migration.NewManager(env).Migrate(database.Get()); err != nil {
			logger.Fatal("migration failed", "error", err)
		}
	}

	router := buildRouter(cfg)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func buildRouter(cfg *config.Config) *gin.Engine {
	db := database.Get()
	log := logger.NewLogger()

	accountRepo := repository.NewAccountRepository(db, log)
	repoRepo := repository.NewGitHubRepositoryRepository(db, log)
	statsRepo := repository.NewCommitStatsRepository(db, log)
	articleRepo := repository.NewArticleRepository(db, log)

	ghClient := githubclient.NewClient(cfg.Provider.GitHub.APIBaseURL, log)
	exchanger := githubclient.NewExchanger(cfg.Provider.GitHub.OAuthBaseURL)
	qiClient := qiitaclient.NewClient(cfg.Provider.Qiita.APIBaseURL, log)
	markdownSvc := markdown.NewService()

	getMyAccount := accountusecases.NewGetMyAccountUseCase(accountRepo, log)
	updateAccount := accountusecases.NewUpdateAccountUseCase(accountRepo, log)

	buildStats := githubusecases.NewBuildCommitStatsUseCase(repoRepo, statsRepo, ghClient, log)
	syncRepos := githubusecases.NewSyncRepositoriesUseCase(accountRepo, repoRepo, buildStats, ghClient, log)
	listRepos := githubusecases.NewListRepositoriesUseCase(repoRepo)
	toggleRepo := githubusecases.NewToggleFeaturedUseCase(repoRepo, log)

	syncArticles := qiitausecases.NewSyncArticlesUseCase(accountRepo, articleRepo, qiClient, markdownSvc, log)
	listArticles := qiitausecases.NewListArticlesUseCase(articleRepo)
	toggleArticle := qiitausecases.NewToggleFeaturedUseCase(articleRepo, log)

	callback := oauthusecases.NewHandleGitHubCallbackUseCase(
		accountRepo, exchanger, ghClient, cfg.OAuth.GitHub, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	return httpinterface.NewRouter(httpinterface.RouterConfig{
		AccountHandler: handlers.NewAccountHandler(getMyAccount, updateAccount, log),
		GitHubHandler:  handlers.NewGitHubHandler(getMyAccount, syncRepos, listRepos, toggleRepo, log),
		QiitaHandler:   handlers.NewQiitaHandler(getMyAccount, syncArticles, listArticles, toggleArticle, log),
		OAuthHandler:   handlers.NewOAuthHandler(callback, cfg.Server.FrontendURL, log),
		JWTService:     jwtService,
		Logger:         log,
		Mode:           cfg.Server.Mode,
	})
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
