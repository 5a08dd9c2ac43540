package review

import (
	"math"
	"time"
)

const (
	// DefaultEasinessFactor is the easiness factor assigned to an item the
	// first time it enters a session.
	DefaultEasinessFactor = 2.5
	// MinEasinessFactor is the floor below which the easiness factor never
	// drops, so an item can never become permanently unschedulable.
	MinEasinessFactor = 1.3
)

// State is the scheduling state for one (owner, item) pair. It outlives any
// study session and is mutated only by Schedule.
type State struct {
	OwnerID        int64     `db:"owner_id"`
	ItemID         int64     `db:"item_id"`
	EasinessFactor float64   `db:"easiness_factor"`
	IntervalDays   int       `db:"interval_days"`
	Repetitions    int       `db:"repetitions"`
	NextReviewAt   time.Time `db:"next_review_at"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// NewState returns the initial scheduling state for an item: due now, with
// the default easiness factor and no history.
func NewState(ownerID, itemID int64, now time.Time) State {
	return State{
		OwnerID:        ownerID,
		ItemID:         itemID,
		EasinessFactor: DefaultEasinessFactor,
		IntervalDays:   0,
		Repetitions:    0,
		NextReviewAt:   now,
	}
}

// Due reports whether the item should be reviewed at asOf.
func (s State) Due(asOf time.Time) bool {
	return !s.NextReviewAt.After(asOf)
}

// Schedule computes the next scheduling state from the current state and a
// recall grade, following the SM-2 family:
//
//   - the easiness factor moves by 0.1 - (4-q)*(0.08 + (4-q)*0.02) and is
//     clamped at MinEasinessFactor,
//   - a failing grade resets the repetition streak and schedules a re-test
//     the next day,
//   - a passing grade grows the interval 1, 6, then round(previous * EF).
//
// Schedule is pure: it performs no I/O and leaves the input state untouched.
// Callers must pass a valid grade.
func Schedule(state State, grade Grade, now time.Time) State {
	next := state

	q := float64(grade)
	ef := state.EasinessFactor + (0.1 - (4-q)*(0.08+(4-q)*0.02))
	next.EasinessFactor = math.Max(ef, MinEasinessFactor)

	if !grade.Passing() {
		next.Repetitions = 0
		next.IntervalDays = 1
	} else {
		next.Repetitions = state.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(state.IntervalDays) * next.EasinessFactor))
		}
	}

	next.NextReviewAt = now.AddDate(0, 0, next.IntervalDays)
	return next
}
