package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/carmen-hq/carmen/internal/interfaces/cli/migrate"
	"github.com/carmen-hq/carmen/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "carmen",
		Short: "Carmen - hospitality platform admin console API",
		Long:  `Carmen serves the administrative console for multi-tenant hospitality deployments: clusters, business units and platform accounts.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
