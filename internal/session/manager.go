package session

import (
	"context"
	"fmt"
	"time"

	"github.com/mfurukawa/tango/internal/collection"
	"github.com/mfurukawa/tango/internal/review"
)

// AnswerResult is the outcome of recording one answer: the updated card and
// the session's progress.
type AnswerResult struct {
	Card          Card
	AnsweredCount int
	TotalCards    int
	Completed     bool
}

// Manager owns the study session lifecycle. It holds no state of its own;
// consistency lives in the repositories' conditional updates, so concurrent
// requests never need an in-process lock.
type Manager struct {
	collections collection.Repository
	states      review.StateRepository
	logs        review.LogRepository
	sessions    Repository
	now         func() time.Time
}

// NewManager creates a new Manager.
func NewManager(
	collections collection.Repository,
	states review.StateRepository,
	logs review.LogRepository,
	sessions Repository,
) *Manager {
	return &Manager{
		collections: collections,
		states:      states,
		logs:        logs,
		sessions:    sessions,
		now:         time.Now,
	}
}

// StartSession selects up to maxCards items from a collection in storage
// order, snapshots each item's review state and persists a new session.
func (m *Manager) StartSession(ctx context.Context, ownerID, collectionID int64, maxCards int) (*Session, error) {
	if maxCards < 1 {
		return nil, ErrInvalidMaxCards
	}

	col, err := m.collections.Find(ctx, ownerID, collectionID)
	if err != nil {
		return nil, fmt.Errorf("collections.Find() > %w", err)
	}
	if col == nil {
		return nil, ErrCollectionNotFound
	}

	items, err := m.collections.FindItems(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("collections.FindItems() > %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCollection
	}
	if len(items) > maxCards {
		items = items[:maxCards]
	}

	now := m.now()
	cards := make([]Card, 0, len(items))
	for i, item := range items {
		state, err := m.states.GetOrCreate(ctx, ownerID, item.ID, now)
		if err != nil {
			return nil, fmt.Errorf("states.GetOrCreate(item %d) > %w", item.ID, err)
		}
		cards = append(cards, Card{
			ItemID:              item.ID,
			Position:            i + 1,
			StartEasinessFactor: state.EasinessFactor,
			StartIntervalDays:   state.IntervalDays,
			StartRepetitions:    state.Repetitions,
		})
	}

	sess := &Session{
		OwnerID:      ownerID,
		CollectionID: collectionID,
		TotalCards:   len(cards),
		Cards:        cards,
	}
	if err := m.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("sessions.Create() > %w", err)
	}
	return sess, nil
}

// RecordAnswer applies the scheduling step to one card's answer. The card's
// review state is advanced and persisted, the answer is appended to the
// review log, and the session is completed when its last card is answered.
//
// The conditional card update decides races: of two concurrent answers for
// the same card exactly one wins, the other gets ErrAlreadyAnswered and the
// review state keeps the winner's result.
func (m *Manager) RecordAnswer(ctx context.Context, ownerID, sessionID, cardID int64, grade review.Grade, responseTimeMs int) (*AnswerResult, error) {
	if !grade.Valid() {
		return nil, review.ErrInvalidGrade
	}

	sess, err := m.sessions.Find(ctx, ownerID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("sessions.Find() > %w", err)
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	card, err := m.sessions.FindCard(ctx, sessionID, cardID)
	if err != nil {
		return nil, fmt.Errorf("sessions.FindCard() > %w", err)
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	if card.Answered() {
		return nil, ErrAlreadyAnswered
	}

	now := m.now()
	state, err := m.states.GetOrCreate(ctx, ownerID, card.ItemID, now)
	if err != nil {
		return nil, fmt.Errorf("states.GetOrCreate() > %w", err)
	}
	next := review.Schedule(state, grade, now)

	quality := int(grade)
	wasCorrect := grade.Passing()
	card.ResultEasinessFactor = &next.EasinessFactor
	card.ResultIntervalDays = &next.IntervalDays
	card.ResultRepetitions = &next.Repetitions
	card.Quality = &quality
	card.WasCorrect = &wasCorrect
	card.ResponseTimeMs = &responseTimeMs
	card.AnsweredAt = &now

	answered, err := m.sessions.AnswerCard(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("sessions.AnswerCard() > %w", err)
	}
	if !answered {
		return nil, ErrAlreadyAnswered
	}

	if err := m.states.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("states.Save() > %w", err)
	}
	if err := m.logs.Create(ctx, &review.Log{
		OwnerID:        ownerID,
		ItemID:         card.ItemID,
		Quality:        quality,
		ResponseTimeMs: responseTimeMs,
		IntervalDays:   next.IntervalDays,
		EasinessFactor: next.EasinessFactor,
		ReviewedAt:     now,
	}); err != nil {
		return nil, fmt.Errorf("logs.Create() > %w", err)
	}

	answeredCount, err := m.sessions.CountAnswered(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("sessions.CountAnswered() > %w", err)
	}
	completed := answeredCount == sess.TotalCards
	if completed {
		if err := m.sessions.MarkComplete(ctx, sessionID, now); err != nil {
			return nil, fmt.Errorf("sessions.MarkComplete() > %w", err)
		}
	}

	return &AnswerResult{
		Card:          *card,
		AnsweredCount: answeredCount,
		TotalCards:    sess.TotalCards,
		Completed:     completed,
	}, nil
}

// GetSession returns an owner's session with its cards.
func (m *Manager) GetSession(ctx context.Context, ownerID, sessionID int64) (*Session, error) {
	sess, err := m.sessions.Find(ctx, ownerID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("sessions.Find() > %w", err)
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// DueCards returns the owner's review states due as of the given time.
func (m *Manager) DueCards(ctx context.Context, ownerID int64, asOf time.Time) ([]review.State, error) {
	states, err := m.states.FindDue(ctx, ownerID, asOf)
	if err != nil {
		return nil, fmt.Errorf("states.FindDue() > %w", err)
	}
	return states, nil
}
