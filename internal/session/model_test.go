package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AnsweredCount(t *testing.T) {
	answeredAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sess Session
		want int
	}{
		{
			name: "no cards answered",
			sess: Session{Cards: []Card{{ID: 1}, {ID: 2}}},
			want: 0,
		},
		{
			name: "some cards answered",
			sess: Session{Cards: []Card{
				{ID: 1, AnsweredAt: &answeredAt},
				{ID: 2},
				{ID: 3, AnsweredAt: &answeredAt},
			}},
			want: 2,
		},
		{
			name: "no cards at all",
			sess: Session{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sess.AnsweredCount())
		})
	}
}

func TestSession_NextUnanswered(t *testing.T) {
	answeredAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("returns the first unanswered card in session order", func(t *testing.T) {
		sess := Session{Cards: []Card{
			{ID: 1, Position: 1, AnsweredAt: &answeredAt},
			{ID: 2, Position: 2},
			{ID: 3, Position: 3},
		}}

		got := sess.NextUnanswered()
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.ID)
	})

	t.Run("returns nil when everything is answered", func(t *testing.T) {
		sess := Session{Cards: []Card{
			{ID: 1, AnsweredAt: &answeredAt},
		}}
		assert.Nil(t, sess.NextUnanswered())
	})
}

func TestSession_Completed(t *testing.T) {
	completedAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.False(t, (&Session{}).Completed())
	assert.True(t, (&Session{CompletedAt: &completedAt}).Completed())
}

func TestCard_Answered(t *testing.T) {
	answeredAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.False(t, Card{}.Answered())
	assert.True(t, Card{AnsweredAt: &answeredAt}.Answered())
}
