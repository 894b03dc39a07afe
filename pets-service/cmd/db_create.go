package main

import (
	"fmt"

	"petshop/pets-service/internal/app/pets/config"
	"petshop/pets-service/internal/app/pets/entity"
	"petshop/pkg/logger"

	"github.com/spf13/cobra"
)

// dbCreateCmd пересоздаёт таблицу pets. Все данные теряются, не для production
func dbCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "db-create",
		Short: "Drop and recreate the pets table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			initLogger(cfg.Log)

			if cfg.Database.InMemory() {
				logger.Info().Msg("In-memory store has no tables, nothing to do")
				return nil
			}

			db, err := connectDB(cfg.Database.URI)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := db.Migrator().DropTable(&entity.Pet{}); err != nil {
				return fmt.Errorf("failed to drop pets table: %w", err)
			}
			if err := db.AutoMigrate(&entity.Pet{}); err != nil {
				return fmt.Errorf("failed to create pets table: %w", err)
			}

			logger.Info().Msg("Pets table recreated")
			return nil
		},
	}
}
