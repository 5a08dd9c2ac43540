package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mfurukawa/tango/internal/review"
	"github.com/mfurukawa/tango/internal/statistics"
)

// RunAnalyzeReport displays the learning statistics report for one learner.
func RunAnalyzeReport(ctx context.Context, logs review.LogRepository, ownerID int64, year, month int) error {
	records, err := logs.FindByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("logs.FindByOwner() > %w", err)
	}

	result := statistics.Calculate(records, year, month)

	if len(result.Periods) == 0 {
		fmt.Println("No review records found for the specified period.")
		return nil
	}

	fmt.Println("Learning Statistics Report")
	fmt.Println("==========================")
	fmt.Println()
	fmt.Printf("%-10s  %-24s  %-24s  %-8s\n", "Period", "New Items (Total/Unique)", "Relearns (Total/Unique)", "Failures")
	fmt.Printf("%-10s  %-24s  %-24s  %-8s\n", "------", "------------------------", "-----------------------", "--------")

	for _, s := range result.Periods {
		fmt.Printf("%-10s  %-24s  %-24s  %-8d\n",
			s.Period,
			fmt.Sprintf("%d / %d", s.NewItemsCount, s.NewItemsUnique),
			fmt.Sprintf("%d / %d", s.RelearnsCount, s.RelearnsUnique),
			s.FailuresCount,
		)
	}

	fmt.Println()
	fmt.Printf("%-10s  %-24s  %-24s  %-8d\n",
		"Totals:",
		fmt.Sprintf("%d / %d", result.Aggregate.NewItemsCount, result.Aggregate.NewItemsUnique),
		fmt.Sprintf("%d / %d", result.Aggregate.RelearnsCount, result.Aggregate.RelearnsUnique),
		result.Aggregate.FailuresCount,
	)

	return nil
}

// RunDueReport lists review states that are due as of now.
func RunDueReport(ctx context.Context, states review.StateRepository, ownerID int64, now time.Time) error {
	due, err := states.FindDue(ctx, ownerID, now)
	if err != nil {
		return fmt.Errorf("states.FindDue() > %w", err)
	}

	if len(due) == 0 {
		fmt.Println("Nothing is due for review.")
		return nil
	}

	fmt.Printf("%d item(s) due for review:\n\n", len(due))
	fmt.Printf("%-10s  %-10s  %-6s  %-6s  %s\n", "Item", "Interval", "Reps", "EF", "Due Since")
	for _, state := range due {
		fmt.Printf("%-10d  %-10d  %-6d  %-6.2f  %s\n",
			state.ItemID,
			state.IntervalDays,
			state.Repetitions,
			state.EasinessFactor,
			state.NextReviewAt.Format("2006-01-02"),
		)
	}

	return nil
}
