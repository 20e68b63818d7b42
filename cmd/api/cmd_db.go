package main

import (
	"github.com/spf13/cobra"

	"github.com/anafloresm/ropita-backend/internal/config"
	"github.com/anafloresm/ropita-backend/internal/platform/database"
	"github.com/anafloresm/ropita-backend/internal/platform/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(cfg.AppEnv)

		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the admin account and demo catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(cfg.AppEnv)

		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		email, _ := cmd.Flags().GetString("admin-email")
		password, _ := cmd.Flags().GetString("admin-password")
		if err := database.Seed(cmd.Context(), db, email, password); err != nil {
			return err
		}
		log.Info().Str("admin", email).Msg("seed data loaded")
		return nil
	},
}

func init() {
	seedCmd.Flags().String("admin-email", "admin@ropita.local", "email of the seeded admin account")
	seedCmd.Flags().String("admin-password", "change-me-now", "password of the seeded admin account")
}
