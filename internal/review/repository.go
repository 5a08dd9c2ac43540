package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/review/mock_repository.go -package=mock_review

// StateRepository defines persistence operations for review states.
type StateRepository interface {
	GetOrCreate(ctx context.Context, ownerID, itemID int64, now time.Time) (State, error)
	Save(ctx context.Context, state State) error
	FindDue(ctx context.Context, ownerID int64, asOf time.Time) ([]State, error)
}

// DBStateRepository implements StateRepository using MySQL.
type DBStateRepository struct {
	db *sqlx.DB
}

// NewDBStateRepository creates a new DBStateRepository.
func NewDBStateRepository(db *sqlx.DB) *DBStateRepository {
	return &DBStateRepository{db: db}
}

// GetOrCreate returns the review state for an (owner, item) pair, inserting
// the initial state when the item has never been reviewed. The insert is
// idempotent so two concurrent callers converge on the same row.
func (r *DBStateRepository) GetOrCreate(ctx context.Context, ownerID, itemID int64, now time.Time) (State, error) {
	var state State
	err := r.db.GetContext(ctx, &state,
		"SELECT * FROM review_states WHERE owner_id = ? AND item_id = ?",
		ownerID, itemID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return State{}, fmt.Errorf("db.GetContext(review_state) > %w", err)
	}

	state = NewState(ownerID, itemID, now)
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO review_states (owner_id, item_id, easiness_factor, interval_days, repetitions, next_review_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE owner_id = owner_id`,
		state.OwnerID, state.ItemID, state.EasinessFactor, state.IntervalDays,
		state.Repetitions, state.NextReviewAt); err != nil {
		return State{}, fmt.Errorf("db.ExecContext(insert review_state) > %w", err)
	}
	return state, nil
}

// Save persists an updated review state for an existing (owner, item) pair.
func (r *DBStateRepository) Save(ctx context.Context, state State) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE review_states
		SET easiness_factor = ?, interval_days = ?, repetitions = ?, next_review_at = ?
		WHERE owner_id = ? AND item_id = ?`,
		state.EasinessFactor, state.IntervalDays, state.Repetitions, state.NextReviewAt,
		state.OwnerID, state.ItemID); err != nil {
		return fmt.Errorf("db.ExecContext(update review_state) > %w", err)
	}
	return nil
}

// FindDue returns all of an owner's review states whose next review date has
// passed as of the given time, most overdue first.
func (r *DBStateRepository) FindDue(ctx context.Context, ownerID int64, asOf time.Time) ([]State, error) {
	var states []State
	if err := r.db.SelectContext(ctx, &states,
		"SELECT * FROM review_states WHERE owner_id = ? AND next_review_at <= ? ORDER BY next_review_at",
		ownerID, asOf); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due review_states) > %w", err)
	}
	return states, nil
}
