package review

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=log.go -destination=../mocks/review/mock_log.go -package=mock_review

// Log is one recorded answer: the grade, the latency and the scheduling
// values that resulted from it. Logs are append-only history; scheduling
// itself reads only review states.
type Log struct {
	ID             int64     `db:"id"`
	OwnerID        int64     `db:"owner_id"`
	ItemID         int64     `db:"item_id"`
	Quality        int       `db:"quality"`
	ResponseTimeMs int       `db:"response_time_ms"`
	IntervalDays   int       `db:"interval_days"`
	EasinessFactor float64   `db:"easiness_factor"`
	ReviewedAt     time.Time `db:"reviewed_at"`
	CreatedAt      time.Time `db:"created_at"`
}

// LogRepository defines operations for managing review logs.
type LogRepository interface {
	Create(ctx context.Context, log *Log) error
	FindByOwner(ctx context.Context, ownerID int64) ([]Log, error)
	FindByItem(ctx context.Context, ownerID, itemID int64) ([]Log, error)
}

// DBLogRepository implements LogRepository using MySQL.
type DBLogRepository struct {
	db *sqlx.DB
}

// NewDBLogRepository creates a new DBLogRepository.
func NewDBLogRepository(db *sqlx.DB) *DBLogRepository {
	return &DBLogRepository{db: db}
}

// Create inserts a new review log.
func (r *DBLogRepository) Create(ctx context.Context, log *Log) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO review_logs (owner_id, item_id, quality, response_time_ms, interval_days, easiness_factor, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.OwnerID, log.ItemID, log.Quality, log.ResponseTimeMs,
		log.IntervalDays, log.EasinessFactor, log.ReviewedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert review_log) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	log.ID = id
	return nil
}

// FindByOwner returns all review logs for an owner, oldest first.
func (r *DBLogRepository) FindByOwner(ctx context.Context, ownerID int64) ([]Log, error) {
	var logs []Log
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM review_logs WHERE owner_id = ? ORDER BY reviewed_at",
		ownerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs by owner) > %w", err)
	}
	return logs, nil
}

// FindByItem returns all review logs for one (owner, item) pair, oldest first.
func (r *DBLogRepository) FindByItem(ctx context.Context, ownerID, itemID int64) ([]Log, error) {
	var logs []Log
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM review_logs WHERE owner_id = ? AND item_id = ? ORDER BY reviewed_at",
		ownerID, itemID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs by item) > %w", err)
	}
	return logs, nil
}
