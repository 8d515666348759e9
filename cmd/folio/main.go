package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/folio-inc/folio/internal/interfaces/cli/migrate"
	"github.com/folio-inc/folio/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Folio - portfolio backend with third-party sync",
		Long:  `Folio serves a portfolio backend that mirrors GitHub repositories and Qiita articles into a local cache.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
