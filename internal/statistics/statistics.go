// Package statistics aggregates review logs into per-period learning counts.
package statistics

import (
	"fmt"
	"sort"

	"github.com/mfurukawa/tango/internal/review"
)

// PeriodStatistics holds counts for one month.
type PeriodStatistics struct {
	Period         string // "2025-01"
	NewItemsCount  int    // total first-time successful reviews
	NewItemsUnique int    // unique items reviewed successfully for the first time
	RelearnsCount  int    // total subsequent successful reviews
	RelearnsUnique int    // unique items with a subsequent successful review
	FailuresCount  int    // total failing reviews
}

// AggregateStatistics holds totals across all periods with unique counts
// deduplicated globally.
type AggregateStatistics struct {
	NewItemsCount  int
	NewItemsUnique int
	RelearnsCount  int
	RelearnsUnique int
	FailuresCount  int
}

// Result holds both per-period and aggregate statistics.
type Result struct {
	Periods   []PeriodStatistics
	Aggregate AggregateStatistics
}

type periodData struct {
	newItemsTotal  int
	newItemsUnique map[int64]struct{}
	relearnsTotal  int
	relearnsUnique map[int64]struct{}
	failuresTotal  int
}

// Calculate aggregates review logs per month. Optional year and month
// filters restrict the output (0 means no filter). An item counts as "new"
// on its first passing review; later passing reviews count as relearns.
// Logs must be ordered oldest first, which is how the log repository
// returns them.
func Calculate(logs []review.Log, year, month int) Result {
	stats := make(map[string]*periodData)
	globalNewUnique := make(map[int64]struct{})
	globalRelearnsUnique := make(map[int64]struct{})
	var globalFailures int

	seenPass := make(map[int64]struct{})

	for _, log := range logs {
		if log.ReviewedAt.IsZero() {
			continue
		}

		logYear := log.ReviewedAt.Year()
		logMonth := int(log.ReviewedAt.Month())
		passing := review.Grade(log.Quality).Passing()

		if !matchesFilter(logYear, logMonth, year, month) {
			// Still track first successes outside the filter so later
			// reviews inside it count as relearns, not new items.
			if passing {
				seenPass[log.ItemID] = struct{}{}
			}
			continue
		}

		period := fmt.Sprintf("%d-%02d", logYear, logMonth)
		ensurePeriodExists(stats, period)

		if !passing {
			stats[period].failuresTotal++
			globalFailures++
			continue
		}

		if _, ok := seenPass[log.ItemID]; !ok {
			seenPass[log.ItemID] = struct{}{}
			stats[period].newItemsTotal++
			stats[period].newItemsUnique[log.ItemID] = struct{}{}
			globalNewUnique[log.ItemID] = struct{}{}
		} else {
			stats[period].relearnsTotal++
			stats[period].relearnsUnique[log.ItemID] = struct{}{}
			globalRelearnsUnique[log.ItemID] = struct{}{}
		}
	}

	return buildResult(stats, globalNewUnique, globalRelearnsUnique, globalFailures)
}

func ensurePeriodExists(stats map[string]*periodData, period string) {
	if stats[period] == nil {
		stats[period] = &periodData{
			newItemsUnique: make(map[int64]struct{}),
			relearnsUnique: make(map[int64]struct{}),
		}
	}
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

func buildResult(stats map[string]*periodData, globalNewUnique, globalRelearnsUnique map[int64]struct{}, globalFailures int) Result {
	periods := make([]PeriodStatistics, 0, len(stats))

	var totalNew, totalRelearns int
	for period, data := range stats {
		periods = append(periods, PeriodStatistics{
			Period:         period,
			NewItemsCount:  data.newItemsTotal,
			NewItemsUnique: len(data.newItemsUnique),
			RelearnsCount:  data.relearnsTotal,
			RelearnsUnique: len(data.relearnsUnique),
			FailuresCount:  data.failuresTotal,
		})
		totalNew += data.newItemsTotal
		totalRelearns += data.relearnsTotal
	}

	// Newest period first.
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return Result{
		Periods: periods,
		Aggregate: AggregateStatistics{
			NewItemsCount:  totalNew,
			NewItemsUnique: len(globalNewUnique),
			RelearnsCount:  totalRelearns,
			RelearnsUnique: len(globalRelearnsUnique),
			FailuresCount:  globalFailures,
		},
	}
}
