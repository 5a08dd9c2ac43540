package server

import (
	"time"

	"github.com/mfurukawa/tango/internal/session"
	"github.com/mfurukawa/tango/internal/statistics"
)

type cardResponse struct {
	ID             int64      `json:"id"`
	ItemID         int64      `json:"item_id"`
	Position       int        `json:"position"`
	Answered       bool       `json:"answered"`
	Quality        *int       `json:"quality,omitempty"`
	WasCorrect     *bool      `json:"was_correct,omitempty"`
	ResponseTimeMs *int       `json:"response_time_ms,omitempty"`
	IntervalDays   *int       `json:"interval_days,omitempty"`
	EasinessFactor *float64   `json:"easiness_factor,omitempty"`
	Repetitions    *int       `json:"repetitions,omitempty"`
	AnsweredAt     *time.Time `json:"answered_at,omitempty"`
}

func newCardResponse(card session.Card) cardResponse {
	return cardResponse{
		ID:             card.ID,
		ItemID:         card.ItemID,
		Position:       card.Position,
		Answered:       card.Answered(),
		Quality:        card.Quality,
		WasCorrect:     card.WasCorrect,
		ResponseTimeMs: card.ResponseTimeMs,
		IntervalDays:   card.ResultIntervalDays,
		EasinessFactor: card.ResultEasinessFactor,
		Repetitions:    card.ResultRepetitions,
		AnsweredAt:     card.AnsweredAt,
	}
}

type sessionResponse struct {
	ID            int64          `json:"id"`
	CollectionID  int64          `json:"collection_id"`
	TotalCards    int            `json:"total_cards"`
	AnsweredCount int            `json:"answered_count"`
	Completed     bool           `json:"completed"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	NextCardID    *int64         `json:"next_card_id,omitempty"`
	Cards         []cardResponse `json:"cards"`
}

func newSessionResponse(sess *session.Session) sessionResponse {
	cards := make([]cardResponse, 0, len(sess.Cards))
	for _, card := range sess.Cards {
		cards = append(cards, newCardResponse(card))
	}

	resp := sessionResponse{
		ID:            sess.ID,
		CollectionID:  sess.CollectionID,
		TotalCards:    sess.TotalCards,
		AnsweredCount: sess.AnsweredCount(),
		Completed:     sess.Completed(),
		CompletedAt:   sess.CompletedAt,
		Cards:         cards,
	}
	if next := sess.NextUnanswered(); next != nil {
		resp.NextCardID = &next.ID
	}
	return resp
}

type answerResponse struct {
	Card          cardResponse `json:"card"`
	AnsweredCount int          `json:"answered_count"`
	TotalCards    int          `json:"total_cards"`
	Completed     bool         `json:"completed"`
}

type dueReviewResponse struct {
	ItemID         int64     `json:"item_id"`
	EasinessFactor float64   `json:"easiness_factor"`
	IntervalDays   int       `json:"interval_days"`
	Repetitions    int       `json:"repetitions"`
	NextReviewAt   time.Time `json:"next_review_at"`
}

type dueReviewsResponse struct {
	Reviews []dueReviewResponse `json:"reviews"`
}

type periodStatisticsResponse struct {
	Period         string `json:"period"`
	NewItemsCount  int    `json:"new_items_count"`
	NewItemsUnique int    `json:"new_items_unique"`
	RelearnsCount  int    `json:"relearns_count"`
	RelearnsUnique int    `json:"relearns_unique"`
	FailuresCount  int    `json:"failures_count"`
}

type statisticsResponse struct {
	Periods   []periodStatisticsResponse `json:"periods"`
	Aggregate periodStatisticsResponse   `json:"aggregate"`
}

func newStatisticsResponse(result statistics.Result) statisticsResponse {
	periods := make([]periodStatisticsResponse, 0, len(result.Periods))
	for _, period := range result.Periods {
		periods = append(periods, periodStatisticsResponse{
			Period:         period.Period,
			NewItemsCount:  period.NewItemsCount,
			NewItemsUnique: period.NewItemsUnique,
			RelearnsCount:  period.RelearnsCount,
			RelearnsUnique: period.RelearnsUnique,
			FailuresCount:  period.FailuresCount,
		})
	}
	return statisticsResponse{
		Periods: periods,
		Aggregate: periodStatisticsResponse{
			NewItemsCount:  result.Aggregate.NewItemsCount,
			NewItemsUnique: result.Aggregate.NewItemsUnique,
			RelearnsCount:  result.Aggregate.RelearnsCount,
			RelearnsUnique: result.Aggregate.RelearnsUnique,
			FailuresCount:  result.Aggregate.FailuresCount,
		},
	}
}
