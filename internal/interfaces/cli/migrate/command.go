// Package migrate implements the migrate CLI command.
package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/folio-inc/folio/internal/infrastructure/config"
	"github.com/folio-inc/folio/internal/infrastructure/database"
	"github.com/folio-inc/folio/internal/infrastructure/migration"
	"github.com/folio-inc/folio/internal/shared/logger"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Run database migrations, roll them back, or check the current schema version.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newUpCommand(), newDownCommand(), newStatusCommand())

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func() error {
				return migration.NewManager(env).Migrate(database.Get())
			})
		},
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func() error {
				return gooseStrategy().MigrateDown(database.Get(), steps)
			})
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func() error {
				strategy := gooseStrategy()
				version, err := strategy.GetVersion(database.Get())
				if err != nil {
					return err
				}
				fmt.Printf("current migration version: %d\n", version)
				return strategy.Status(database.Get())
			})
		},
	}
}

func gooseStrategy() *migration.GooseStrategy {
	scriptsPath, _ := filepath.Abs(migration.DefaultScriptsPath)
	return migration.NewGooseStrategy(scriptsPath)
}

func withDatabase(fn func() error) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	return fn()
}
