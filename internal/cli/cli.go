// Package cli holds the mumuctl maintenance commands.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"mumu_delivery/internal/config"
	"mumu_delivery/internal/logger"
)

// openDB loads the environment and connects; migrations run on connect.
func openDB() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	logger.Setup(cfg.LogFile, cfg.LogLevel)
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := openDB()
			if err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			fmt.Printf("%s schema is up to date (%s)\n", color.New(color.FgGreen).Sprint("✓"), cfg.DBDriver)
			return nil
		},
	}
}
