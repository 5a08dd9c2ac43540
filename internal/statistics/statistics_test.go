package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mfurukawa/tango/internal/review"
)

func makeLog(itemID int64, quality int, reviewedAt time.Time) review.Log {
	return review.Log{
		OwnerID:    1,
		ItemID:     itemID,
		Quality:    quality,
		ReviewedAt: reviewedAt,
	}
}

func TestCalculate(t *testing.T) {
	jan10 := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	jan20 := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)
	feb05 := time.Date(2025, 2, 5, 9, 0, 0, 0, time.UTC)

	logs := []review.Log{
		makeLog(101, int(review.GradeGood), jan10),      // new in January
		makeLog(102, int(review.GradeIncorrect), jan10), // failure
		makeLog(102, int(review.GradeGood), jan20),      // new in January
		makeLog(101, int(review.GradeEasy), feb05),      // relearn in February
		makeLog(103, int(review.GradeGood), feb05),      // new in February
		makeLog(103, int(review.GradeGood), feb05),      // relearn same day
	}

	for name, tc := range map[string]struct {
		logs     []review.Log
		year     int
		month    int
		expected Result
	}{
		"no filter": {
			logs: logs,
			expected: Result{
				Periods: []PeriodStatistics{
					{
						Period:         "2025-02",
						NewItemsCount:  1,
						NewItemsUnique: 1,
						RelearnsCount:  2,
						RelearnsUnique: 2,
					},
					{
						Period:         "2025-01",
						NewItemsCount:  2,
						NewItemsUnique: 2,
						FailuresCount:  1,
					},
				},
				Aggregate: AggregateStatistics{
					NewItemsCount:  3,
					NewItemsUnique: 3,
					RelearnsCount:  2,
					RelearnsUnique: 2,
					FailuresCount:  1,
				},
			},
		},
		"filter by month": {
			logs:  logs,
			year:  2025,
			month: 2,
			expected: Result{
				Periods: []PeriodStatistics{
					{
						Period:         "2025-02",
						NewItemsCount:  1,
						NewItemsUnique: 1,
						RelearnsCount:  2,
						RelearnsUnique: 2,
					},
				},
				Aggregate: AggregateStatistics{
					NewItemsCount:  1,
					NewItemsUnique: 1,
					RelearnsCount:  2,
					RelearnsUnique: 2,
				},
			},
		},
		"filter by year excludes other years": {
			logs: append(logs,
				makeLog(104, int(review.GradeGood), time.Date(2024, 12, 31, 9, 0, 0, 0, time.UTC))),
			year: 2024,
			expected: Result{
				Periods: []PeriodStatistics{
					{
						Period:         "2024-12",
						NewItemsCount:  1,
						NewItemsUnique: 1,
					},
				},
				Aggregate: AggregateStatistics{
					NewItemsCount:  1,
					NewItemsUnique: 1,
				},
			},
		},
		"no logs": {
			expected: Result{
				Periods: []PeriodStatistics{},
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := Calculate(tc.logs, tc.year, tc.month)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCalculate_PassOutsideFilterMakesRelearn(t *testing.T) {
	logs := []review.Log{
		makeLog(201, int(review.GradeGood), time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)),
		makeLog(201, int(review.GradeGood), time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)),
	}

	got := Calculate(logs, 2025, 2)
	assert.Equal(t, []PeriodStatistics{
		{
			Period:         "2025-02",
			RelearnsCount:  1,
			RelearnsUnique: 1,
		},
	}, got.Periods)
	assert.Zero(t, got.Aggregate.NewItemsCount)
}
