package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfurukawa/tango/internal/database"
	"github.com/mfurukawa/tango/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx := cmd.Context()
			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}

			fmt.Println("Migrations applied.")
			return nil
		},
	}
}
