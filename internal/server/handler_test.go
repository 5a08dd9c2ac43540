package server_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/mfurukawa/tango/internal/config"
	mock_review "github.com/mfurukawa/tango/internal/mocks/review"
	mock_server "github.com/mfurukawa/tango/internal/mocks/server"
	"github.com/mfurukawa/tango/internal/review"
	"github.com/mfurukawa/tango/internal/server"
	"github.com/mfurukawa/tango/internal/session"
)

type testServer struct {
	router  *gin.Engine
	manager *mock_server.MockSessionManager
	logs    *mock_review.MockLogRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	manager := mock_server.NewMockSessionManager(ctrl)
	logs := mock_review.NewMockLogRepository(ctrl)

	handler := server.NewHandler(zap.NewNop().Sugar(), manager, logs, 20)
	router := server.NewRouter(handler, config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	return &testServer{
		router:  router,
		manager: manager,
		logs:    logs,
	}
}

func (ts *testServer) do(method, path, ownerID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if ownerID != "" {
		req.Header.Set("X-Owner-ID", ownerID)
	}
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, req)
	return recorder
}

func TestOwnerID(t *testing.T) {
	tests := []struct {
		name       string
		ownerID    string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing header",
			ownerID:    "",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "missing_owner",
		},
		{
			name:       "non numeric header",
			ownerID:    "alice",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "invalid_owner",
		},
		{
			name:       "non positive header",
			ownerID:    "0",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "invalid_owner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			got := ts.do(http.MethodGet, "/api/reviews/due", tt.ownerID, "")

			assert.Equal(t, tt.wantStatus, got.Code)
			var envelope server.ErrorEnvelope
			require.NoError(t, json.Unmarshal(got.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestHandler_StartSession(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	startedSession := &session.Session{
		ID:           42,
		OwnerID:      7,
		CollectionID: 3,
		TotalCards:   2,
		CreatedAt:    now,
		Cards: []session.Card{
			{ID: 100, SessionID: 42, ItemID: 11, Position: 1},
			{ID: 101, SessionID: 42, ItemID: 12, Position: 2},
		},
	}

	tests := []struct {
		name       string
		body       string
		setupMock  func(manager *mock_server.MockSessionManager)
		wantStatus int
	}{
		{
			name: "starts a session",
			body: `{"collection_id": 3, "max_cards": 2}`,
			setupMock: func(manager *mock_server.MockSessionManager) {
				manager.EXPECT().
					StartSession(gomock.Any(), int64(7), int64(3), 2).
					Return(startedSession, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "uses default max cards when omitted",
			body: `{"collection_id": 3}`,
			setupMock: func(manager *mock_server.MockSessionManager) {
				manager.EXPECT().
					StartSession(gomock.Any(), int64(7), int64(3), 20).
					Return(startedSession, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing collection id",
			body:       `{}`,
			setupMock:  func(manager *mock_server.MockSessionManager) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "collection not found",
			body: `{"collection_id": 3, "max_cards": 2}`,
			setupMock: func(manager *mock_server.MockSessionManager) {
				manager.EXPECT().
					StartSession(gomock.Any(), int64(7), int64(3), 2).
					Return(nil, session.ErrCollectionNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "empty collection",
			body: `{"collection_id": 3, "max_cards": 2}`,
			setupMock: func(manager *mock_server.MockSessionManager) {
				manager.EXPECT().
					StartSession(gomock.Any(), int64(7), int64(3), 2).
					Return(nil, session.ErrEmptyCollection)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "internal error",
			body: `{"collection_id": 3, "max_cards": 2}`,
			setupMock: func(manager *mock_server.MockSessionManager) {
				manager.EXPECT().
					StartSession(gomock.Any(), int64(7), int64(3), 2).
					Return(nil, fmt.Errorf("db is down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			tt.setupMock(ts.manager)

			got := ts.do(http.MethodPost, "/api/sessions", "7", tt.body)
			assert.Equal(t, tt.wantStatus, got.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(got.Body.Bytes(), &resp))
				assert.Equal(t, float64(42), resp["id"])
				assert.Equal(t, float64(2), resp["total_cards"])
				assert.Equal(t, float64(0), resp["answered_count"])
				assert.Equal(t, float64(100), resp["next_card_id"])
			}
		})
	}
}

func TestHandler_GetSession(t *testing.T) {
	t.Run("returns the session", func(t *testing.T) {
		ts := newTestServer(t)
		completedAt := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
		ts.manager.EXPECT().
			GetSession(gomock.Any(), int64(7), int64(42)).
			Return(&session.Session{
				ID:           42,
				OwnerID:      7,
				CollectionID: 3,
				TotalCards:   1,
				CompletedAt:  &completedAt,
				Cards: []session.Card{
					{ID: 100, SessionID: 42, ItemID: 11, Position: 1, AnsweredAt: &completedAt},
				},
			}, nil)

		got := ts.do(http.MethodGet, "/api/sessions/42", "7", "")
		assert.Equal(t, http.StatusOK, got.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(got.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["completed"])
		assert.Equal(t, float64(1), resp["answered_count"])
		assert.NotContains(t, resp, "next_card_id")
	})

	t.Run("session not found", func(t *testing.T) {
		ts := newTestServer(t)
		ts.manager.EXPECT().
			GetSession(gomock.Any(), int64(7), int64(42)).
			Return(nil, session.ErrSessionNotFound)

		got := ts.do(http.MethodGet, "/api/sessions/42", "7", "")
		assert.Equal(t, http.StatusNotFound, got.Code)
	})

	t.Run("invalid session id", func(t *testing.T) {
		ts := newTestServer(t)
		got := ts.do(http.MethodGet, "/api/sessions/abc", "7", "")
		assert.Equal(t, http.StatusBadRequest, got.Code)
	})
}

func TestHandler_RecordAnswer(t *testing.T) {
	answeredAt := time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC)
	quality := int(review.GradeGood)
	wasCorrect := true
	intervalDays := 6
	answeredCard := session.Card{
		ID:         100,
		SessionID:  42,
		ItemID:     11,
		Position:   1,
		Quality:    &quality,
		WasCorrect: &wasCorrect,

		ResultIntervalDays: &intervalDays,
		AnsweredAt:         &answeredAt,
	}

	tests := []struct {
		name       string
		body       string
		setupMock  func(manager *mock_server.MockSessionManager)
		wantStatus int
		wantCode   string
	}{
		{
			name: "records an answer",
			body: `{"quality": 3, "response_time_ms": 1200}`,
			setupMock: func(manager *mock_server.MockSessionManager) {
				manager.EXPECT().
					RecordAnswer(gomock.Any(), int64(7), int64(42), int64(100), review.GradeGood, 1200).
					Return(&session.AnswerResult{
						Card:          answeredCard,
						AnsweredCount: 1,
						TotalCards:    2,
					}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "quality zero is a valid grade",
			body: `{"quality": 0}`,
			setupMock: func(manager *mock_server.MockSessionManager) {
				manager.EXPECT().
					RecordAnswer(gomock.Any(), int64(7), int64(42), int64(100), review.GradeBlackout, 0).
					Return(&session.AnswerResult{
						Card:          answeredCard,
						AnsweredCount: 1,
						TotalCards:    2,
					}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing quality",
			body:       `{"response_time_ms": 1200}`,
			setupMock:  func(manager *mock_server.MockSessionManager) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid grade",
			body: `{"quality": 9}`,
			setupMock: func(manager *mock_server.MockSessionManager) {
				manager.EXPECT().
					RecordAnswer(gomock.Any(), int64(7), int64(42), int64(100), review.Grade(9), 0).
					Return(nil, fmt.Errorf("grade 9: %w", review.ErrInvalidGrade))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "already answered",
			body: `{"quality": 3}`,
			setupMock: func(manager *mock_server.MockSessionManager) {
				manager.EXPECT().
					RecordAnswer(gomock.Any(), int64(7), int64(42), int64(100), review.GradeGood, 0).
					Return(nil, session.ErrAlreadyAnswered)
			},
			wantStatus: http.StatusConflict,
			wantCode:   "already_answered",
		},
		{
			name: "card not found",
			body: `{"quality": 3}`,
			setupMock: func(manager *mock_server.MockSessionManager) {
				manager.EXPECT().
					RecordAnswer(gomock.Any(), int64(7), int64(42), int64(100), review.GradeGood, 0).
					Return(nil, session.ErrCardNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			tt.setupMock(ts.manager)

			got := ts.do(http.MethodPost, "/api/sessions/42/cards/100/answer", "7", tt.body)
			assert.Equal(t, tt.wantStatus, got.Code)

			if tt.wantCode != "" {
				var envelope server.ErrorEnvelope
				require.NoError(t, json.Unmarshal(got.Body.Bytes(), &envelope))
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
			}
			if tt.wantStatus == http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(got.Body.Bytes(), &resp))
				assert.Equal(t, float64(1), resp["answered_count"])
				assert.Equal(t, float64(2), resp["total_cards"])
				assert.Equal(t, false, resp["completed"])
			}
		})
	}
}

func TestHandler_DueReviews(t *testing.T) {
	t.Run("returns due reviews", func(t *testing.T) {
		ts := newTestServer(t)
		due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		ts.manager.EXPECT().
			DueCards(gomock.Any(), int64(7), gomock.Any()).
			Return([]review.State{
				{
					OwnerID:        7,
					ItemID:         11,
					EasinessFactor: 2.5,
					IntervalDays:   6,
					Repetitions:    2,
					NextReviewAt:   due,
				},
			}, nil)

		got := ts.do(http.MethodGet, "/api/reviews/due", "7", "")
		assert.Equal(t, http.StatusOK, got.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(got.Body.Bytes(), &resp))
		reviews := resp["reviews"].([]any)
		require.Len(t, reviews, 1)
		first := reviews[0].(map[string]any)
		assert.Equal(t, float64(11), first["item_id"])
		assert.Equal(t, float64(6), first["interval_days"])
	})

	t.Run("returns empty list when nothing is due", func(t *testing.T) {
		ts := newTestServer(t)
		ts.manager.EXPECT().
			DueCards(gomock.Any(), int64(7), gomock.Any()).
			Return(nil, nil)

		got := ts.do(http.MethodGet, "/api/reviews/due", "7", "")
		assert.Equal(t, http.StatusOK, got.Code)
		assert.JSONEq(t, `{"reviews": []}`, got.Body.String())
	})
}

func TestHandler_Statistics(t *testing.T) {
	t.Run("returns monthly statistics", func(t *testing.T) {
		ts := newTestServer(t)
		ts.logs.EXPECT().
			FindByOwner(gomock.Any(), int64(7)).
			Return([]review.Log{
				{
					OwnerID:    7,
					ItemID:     11,
					Quality:    int(review.GradeGood),
					ReviewedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
				},
			}, nil)

		got := ts.do(http.MethodGet, "/api/statistics", "7", "")
		assert.Equal(t, http.StatusOK, got.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(got.Body.Bytes(), &resp))
		periods := resp["periods"].([]any)
		require.Len(t, periods, 1)
		first := periods[0].(map[string]any)
		assert.Equal(t, "2025-03", first["period"])
		assert.Equal(t, float64(1), first["new_items_count"])
	})

	t.Run("filters by year and month", func(t *testing.T) {
		ts := newTestServer(t)
		ts.logs.EXPECT().
			FindByOwner(gomock.Any(), int64(7)).
			Return([]review.Log{
				{
					OwnerID:    7,
					ItemID:     11,
					Quality:    int(review.GradeGood),
					ReviewedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
				},
				{
					OwnerID:    7,
					ItemID:     12,
					Quality:    int(review.GradeGood),
					ReviewedAt: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
				},
			}, nil)

		got := ts.do(http.MethodGet, "/api/statistics?year=2025&month=3", "7", "")
		assert.Equal(t, http.StatusOK, got.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(got.Body.Bytes(), &resp))
		periods := resp["periods"].([]any)
		require.Len(t, periods, 1)
		assert.Equal(t, "2025-03", periods[0].(map[string]any)["period"])
	})

	t.Run("invalid year", func(t *testing.T) {
		ts := newTestServer(t)
		got := ts.do(http.MethodGet, "/api/statistics?year=abc", "7", "")
		assert.Equal(t, http.StatusBadRequest, got.Code)
	})

	t.Run("month without year", func(t *testing.T) {
		ts := newTestServer(t)
		got := ts.do(http.MethodGet, "/api/statistics?month=5", "7", "")
		assert.Equal(t, http.StatusBadRequest, got.Code)
	})

	t.Run("month out of range", func(t *testing.T) {
		ts := newTestServer(t)
		got := ts.do(http.MethodGet, "/api/statistics?year=2025&month=13", "7", "")
		assert.Equal(t, http.StatusBadRequest, got.Code)
	})
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	got := ts.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, got.Code)
	assert.JSONEq(t, `{"status": "ok"}`, got.Body.String())
}
