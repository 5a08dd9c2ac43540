// Package server provides the HTTP API for study sessions and reviews.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mfurukawa/tango/internal/review"
	"github.com/mfurukawa/tango/internal/session"
	"github.com/mfurukawa/tango/internal/statistics"
)

//go:generate mockgen -source=handler.go -destination=../mocks/server/mock_handler.go -package=mock_server

// SessionManager is the part of the session manager the handlers use.
type SessionManager interface {
	StartSession(ctx context.Context, ownerID, collectionID int64, maxCards int) (*session.Session, error)
	RecordAnswer(ctx context.Context, ownerID, sessionID, cardID int64, grade review.Grade, responseTimeMs int) (*session.AnswerResult, error)
	GetSession(ctx context.Context, ownerID, sessionID int64) (*session.Session, error)
	DueCards(ctx context.Context, ownerID int64, asOf time.Time) ([]review.State, error)
}

// Handler serves the session and review endpoints.
type Handler struct {
	log             *zap.SugaredLogger
	manager         SessionManager
	logs            review.LogRepository
	defaultMaxCards int
}

// NewHandler creates a new Handler.
func NewHandler(log *zap.SugaredLogger, manager SessionManager, logs review.LogRepository, defaultMaxCards int) *Handler {
	return &Handler{
		log:             log.With("handler", "Handler"),
		manager:         manager,
		logs:            logs,
		defaultMaxCards: defaultMaxCards,
	}
}

const ownerIDKey = "ownerID"

// OwnerID is a middleware that reads the authenticated learner from the
// X-Owner-ID header. Authentication proper lives in front of this service;
// the header is what it forwards.
func OwnerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-Owner-ID")
		if header == "" {
			RespondError(c, http.StatusUnauthorized, "missing_owner", errors.New("X-Owner-ID header is required"))
			c.Abort()
			return
		}
		ownerID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || ownerID <= 0 {
			RespondError(c, http.StatusUnauthorized, "invalid_owner", errors.New("X-Owner-ID header must be a positive integer"))
			c.Abort()
			return
		}
		c.Set(ownerIDKey, ownerID)
		c.Next()
	}
}

func ownerFrom(c *gin.Context) int64 {
	return c.GetInt64(ownerIDKey)
}

type startSessionRequest struct {
	CollectionID int64 `json:"collection_id" binding:"required"`
	MaxCards     int   `json:"max_cards"`
}

// POST /api/sessions
// Start a new study session over a collection.
func (h *Handler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.MaxCards == 0 {
		req.MaxCards = h.defaultMaxCards
	}

	sess, err := h.manager.StartSession(c.Request.Context(), ownerFrom(c), req.CollectionID, req.MaxCards)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSessionResponse(sess))
}

// GET /api/sessions/:sessionID
// Fetch a session with its cards and progress.
func (h *Handler) GetSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "sessionID")
	if !ok {
		return
	}

	sess, err := h.manager.GetSession(c.Request.Context(), ownerFrom(c), sessionID)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	RespondOK(c, newSessionResponse(sess))
}

type recordAnswerRequest struct {
	Quality        *int `json:"quality" binding:"required"`
	ResponseTimeMs int  `json:"response_time_ms"`
}

// POST /api/sessions/:sessionID/cards/:cardID/answer
// Record an answer for one card and get the updated progress back.
func (h *Handler) RecordAnswer(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "sessionID")
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "cardID")
	if !ok {
		return
	}

	var req recordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.manager.RecordAnswer(c.Request.Context(),
		ownerFrom(c), sessionID, cardID, review.Grade(*req.Quality), req.ResponseTimeMs)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	RespondOK(c, answerResponse{
		Card:          newCardResponse(result.Card),
		AnsweredCount: result.AnsweredCount,
		TotalCards:    result.TotalCards,
		Completed:     result.Completed,
	})
}

// GET /api/reviews/due
// List review states that are due as of now.
func (h *Handler) DueReviews(c *gin.Context) {
	states, err := h.manager.DueCards(c.Request.Context(), ownerFrom(c), time.Now())
	if err != nil {
		h.log.Errorw("failed to find due reviews", "error", err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
		return
	}

	items := make([]dueReviewResponse, 0, len(states))
	for _, state := range states {
		items = append(items, dueReviewResponse{
			ItemID:         state.ItemID,
			EasinessFactor: state.EasinessFactor,
			IntervalDays:   state.IntervalDays,
			Repetitions:    state.Repetitions,
			NextReviewAt:   state.NextReviewAt,
		})
	}
	RespondOK(c, dueReviewsResponse{Reviews: items})
}

// GET /api/statistics
// Monthly learning statistics, optionally filtered by year and month.
func (h *Handler) Statistics(c *gin.Context) {
	year, ok := parseIntQuery(c, "year")
	if !ok {
		return
	}
	month, ok := parseIntQuery(c, "month")
	if !ok {
		return
	}
	if month != 0 && year == 0 {
		RespondError(c, http.StatusBadRequest, "invalid_request",
			errors.New("month requires year to be specified"))
		return
	}
	if month > 12 {
		RespondError(c, http.StatusBadRequest, "invalid_request",
			errors.New("month must be between 1 and 12"))
		return
	}

	logs, err := h.logs.FindByOwner(c.Request.Context(), ownerFrom(c))
	if err != nil {
		h.log.Errorw("failed to load review logs", "error", err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
		return
	}

	RespondOK(c, newStatisticsResponse(statistics.Calculate(logs, year, month)))
}

func (h *Handler) respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrCollectionNotFound),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrCardNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, session.ErrAlreadyAnswered):
		RespondError(c, http.StatusConflict, "already_answered", err)
	case errors.Is(err, session.ErrEmptyCollection),
		errors.Is(err, session.ErrInvalidMaxCards),
		errors.Is(err, review.ErrInvalidGrade):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	default:
		h.log.Errorw("internal error", "error", err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("%s must be a positive integer", name))
		return 0, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, name string) (int, bool) {
	value := c.Query(name)
	if value == "" {
		return 0, true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("%s must be a non-negative integer", name))
		return 0, false
	}
	return n, true
}
