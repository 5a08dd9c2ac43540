package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mfurukawa/tango/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/session/mock_repository.go -package=mock_session

// Repository defines persistence operations for study sessions. AnswerCard
// carries the read-modify-write atomicity the manager relies on: the answer
// is written only if the card is still unanswered.
type Repository interface {
	Create(ctx context.Context, sess *Session) error
	Find(ctx context.Context, ownerID, sessionID int64) (*Session, error)
	FindCard(ctx context.Context, sessionID, cardID int64) (*Card, error)
	AnswerCard(ctx context.Context, card *Card) (bool, error)
	CountAnswered(ctx context.Context, sessionID int64) (int, error)
	MarkComplete(ctx context.Context, sessionID int64, completedAt time.Time) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts a session and all of its cards in one transaction, filling
// in the generated IDs.
func (r *DBRepository) Create(ctx context.Context, sess *Session) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			"INSERT INTO study_sessions (owner_id, collection_id, total_cards) VALUES (?, ?, ?)",
			sess.OwnerID, sess.CollectionID, sess.TotalCards)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(insert study_session) > %w", err)
		}
		sessionID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("result.LastInsertId() > %w", err)
		}
		sess.ID = sessionID

		for i := range sess.Cards {
			card := &sess.Cards[i]
			card.SessionID = sessionID

			result, err := tx.ExecContext(ctx,
				`INSERT INTO session_cards (session_id, item_id, position, start_easiness_factor, start_interval_days, start_repetitions)
				VALUES (?, ?, ?, ?, ?, ?)`,
				card.SessionID, card.ItemID, card.Position,
				card.StartEasinessFactor, card.StartIntervalDays, card.StartRepetitions)
			if err != nil {
				return fmt.Errorf("tx.ExecContext(insert session_card) > %w", err)
			}
			cardID, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("result.LastInsertId() > %w", err)
			}
			card.ID = cardID
		}
		return nil
	})
}

// Find returns a session with its cards in session order, scoped to the
// owner, or nil if not found.
func (r *DBRepository) Find(ctx context.Context, ownerID, sessionID int64) (*Session, error) {
	var sess Session
	err := r.db.GetContext(ctx, &sess,
		"SELECT * FROM study_sessions WHERE id = ? AND owner_id = ?",
		sessionID, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(study_session) > %w", err)
	}

	if err := r.db.SelectContext(ctx, &sess.Cards,
		"SELECT * FROM session_cards WHERE session_id = ? ORDER BY position",
		sessionID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(session_cards) > %w", err)
	}
	return &sess, nil
}

// FindCard returns one card of a session, or nil if the card does not belong
// to the session.
func (r *DBRepository) FindCard(ctx context.Context, sessionID, cardID int64) (*Card, error) {
	var card Card
	err := r.db.GetContext(ctx, &card,
		"SELECT * FROM session_cards WHERE id = ? AND session_id = ?",
		cardID, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(session_card) > %w", err)
	}
	return &card, nil
}

// AnswerCard writes the card's answer with a conditional update keyed on the
// unanswered state. It returns false when the card was already answered, in
// which case nothing was written. Two concurrent answers for the same card
// therefore cannot both succeed.
func (r *DBRepository) AnswerCard(ctx context.Context, card *Card) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE session_cards
		SET result_easiness_factor = ?, result_interval_days = ?, result_repetitions = ?,
			quality = ?, was_correct = ?, response_time_ms = ?, answered_at = ?
		WHERE id = ? AND session_id = ? AND answered_at IS NULL`,
		card.ResultEasinessFactor, card.ResultIntervalDays, card.ResultRepetitions,
		card.Quality, card.WasCorrect, card.ResponseTimeMs, card.AnsweredAt,
		card.ID, card.SessionID)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext(answer session_card) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected == 1, nil
}

// CountAnswered returns the number of answered cards in a session.
func (r *DBRepository) CountAnswered(ctx context.Context, sessionID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM session_cards WHERE session_id = ? AND answered_at IS NOT NULL",
		sessionID); err != nil {
		return 0, fmt.Errorf("db.GetContext(count answered session_cards) > %w", err)
	}
	return count, nil
}

// MarkComplete sets the session's completion timestamp if not already set.
func (r *DBRepository) MarkComplete(ctx context.Context, sessionID int64, completedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE study_sessions SET completed_at = ? WHERE id = ? AND completed_at IS NULL",
		completedAt, sessionID); err != nil {
		return fmt.Errorf("db.ExecContext(complete study_session) > %w", err)
	}
	return nil
}
