package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfurukawa/tango/internal/review"
)

func TestParseGrade(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    review.Grade
		wantErr bool
		quit    bool
	}{
		{
			name:  "blackout",
			input: "0\n",
			want:  review.GradeBlackout,
		},
		{
			name:  "good",
			input: "3\n",
			want:  review.GradeGood,
		},
		{
			name:  "easy with surrounding spaces",
			input: "  4  \n",
			want:  review.GradeEasy,
		},
		{
			name:  "quit",
			input: "q\n",
			quit:  true,
		},
		{
			name:  "quit uppercase",
			input: "Q\n",
			quit:  true,
		},
		{
			name:    "out of range",
			input:   "5\n",
			wantErr: true,
		},
		{
			name:    "negative",
			input:   "-1\n",
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   "good\n",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGrade(tt.input)

			if tt.quit {
				assert.ErrorIs(t, err, errQuit)
				return
			}
			if tt.wantErr {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, errQuit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
