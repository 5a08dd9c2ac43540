package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfurukawa/tango/internal/bootstrap"
	"github.com/mfurukawa/tango/internal/collection"
	"github.com/mfurukawa/tango/internal/config"
	"github.com/mfurukawa/tango/internal/database"
	"github.com/mfurukawa/tango/internal/review"
	"github.com/mfurukawa/tango/internal/server"
	"github.com/mfurukawa/tango/internal/session"
	"github.com/mfurukawa/tango/schemas"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "tango-server",
		Short:         "Spaced repetition review HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

const databasePingAttempts = 5

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("zap.NewProduction() > %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Sugar()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		return db.Close()
	})
	if err := database.WaitForPing(ctx, db, databasePingAttempts); err != nil {
		return fmt.Errorf("database.WaitForPing() > %w", err)
	}
	if err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
		return fmt.Errorf("database.Migrate() > %w", err)
	}

	logs := review.NewDBLogRepository(db)
	manager := session.NewManager(
		collection.NewDBRepository(db),
		review.NewDBStateRepository(db),
		logs,
		session.NewDBRepository(db),
	)

	handler := server.NewHandler(log, manager, logs, cfg.Review.DefaultMaxCards)
	router := server.NewRouter(handler, cfg.Server.CORS)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		log.Infow("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
