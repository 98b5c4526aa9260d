package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mumu_delivery/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mumuctl",
		Short: "Maintenance commands for the mumu delivery backend",
	}

	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
