// Package session orchestrates study sessions: selecting cards out of a
// collection, applying the scheduling step to each answer and detecting
// completion.
package session

import "time"

// Card is one vocabulary item inside a specific session. It snapshots the
// review state as of session start and, once answered, the resulting state.
// A card is mutated exactly once, never reordered and never removed.
type Card struct {
	ID        int64 `db:"id"`
	SessionID int64 `db:"session_id"`
	ItemID    int64 `db:"item_id"`
	// Position is the 1-based ordinal of the card within the session.
	Position int `db:"position"`

	StartEasinessFactor float64 `db:"start_easiness_factor"`
	StartIntervalDays   int     `db:"start_interval_days"`
	StartRepetitions    int     `db:"start_repetitions"`

	ResultEasinessFactor *float64 `db:"result_easiness_factor"`
	ResultIntervalDays   *int     `db:"result_interval_days"`
	ResultRepetitions    *int     `db:"result_repetitions"`

	Quality        *int       `db:"quality"`
	WasCorrect     *bool      `db:"was_correct"`
	ResponseTimeMs *int       `db:"response_time_ms"`
	AnsweredAt     *time.Time `db:"answered_at"`

	CreatedAt time.Time `db:"created_at"`
}

// Answered reports whether the card has been answered.
func (c Card) Answered() bool {
	return c.AnsweredAt != nil
}

// Session is one learner-initiated batch of cards. TotalCards is fixed at
// creation; CompletedAt is set exactly when every card is answered. Once
// complete, a session is immutable history.
type Session struct {
	ID           int64      `db:"id"`
	OwnerID      int64      `db:"owner_id"`
	CollectionID int64      `db:"collection_id"`
	TotalCards   int        `db:"total_cards"`
	CompletedAt  *time.Time `db:"completed_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`

	Cards []Card `db:"-"`
}

// Completed reports whether the session has been completed.
func (s *Session) Completed() bool {
	return s.CompletedAt != nil
}

// AnsweredCount returns the number of answered cards. The count is derived
// from the card set rather than stored, so it cannot drift.
func (s *Session) AnsweredCount() int {
	count := 0
	for _, card := range s.Cards {
		if card.Answered() {
			count++
		}
	}
	return count
}

// NextUnanswered returns the first unanswered card in session order, or nil
// when every card has been answered.
func (s *Session) NextUnanswered() *Card {
	for i := range s.Cards {
		if !s.Cards[i].Answered() {
			return &s.Cards[i]
		}
	}
	return nil
}
