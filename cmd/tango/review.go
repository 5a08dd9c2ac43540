package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfurukawa/tango/internal/cli"
	"github.com/mfurukawa/tango/internal/collection"
	"github.com/mfurukawa/tango/internal/review"
	"github.com/mfurukawa/tango/internal/session"
)

func newReviewCommand() *cobra.Command {
	var maxCards int

	command := &cobra.Command{
		Use:   "review <collection-id>",
		Short: "Start an interactive review session over a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("collection-id must be an integer: %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if maxCards == 0 {
				maxCards = cfg.Review.DefaultMaxCards
			}

			ctx := cmd.Context()
			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			collections := collection.NewDBRepository(db)
			manager := session.NewManager(
				collections,
				review.NewDBStateRepository(db),
				review.NewDBLogRepository(db),
				session.NewDBRepository(db),
			)

			reviewCLI, err := cli.NewReviewSessionCLI(ctx, manager, collections, ownerID, collectionID, maxCards)
			if err != nil {
				return err
			}

			fmt.Println("Interactive review session started!")
			fmt.Println("Grade each card from 0 (blackout) to 4 (easy). Type 'q' to quit.")
			fmt.Println()
			return reviewCLI.Run(ctx, reviewCLI)
		},
	}

	command.Flags().IntVar(&maxCards, "max-cards", 0, "Maximum number of cards in the session (default from config)")

	return command
}

func newDueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List items that are due for review",
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

			return cli.RunDueReport(ctx, review.NewDBStateRepository(db), ownerID, time.Now())
		},
	}
}
