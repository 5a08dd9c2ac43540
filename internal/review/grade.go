// Package review provides the spaced-repetition scheduling core: recall
// grades, per-item review state and the SM-2 scheduling step.
package review

import "errors"

// ErrInvalidGrade is returned when a caller supplies a grade outside the
// five enumerated levels. It is a caller contract violation and is rejected
// before any computation or persistence happens.
var ErrInvalidGrade = errors.New("grade must be between 0 and 4")

// Grade is the discrete quality-of-recall rating for a single answer.
type Grade int

const (
	// GradeBlackout means no recall at all.
	GradeBlackout Grade = iota
	// GradeIncorrect means the answer was wrong but the item felt familiar.
	GradeIncorrect
	// GradeHard means the answer was wrong but close, or barely recalled.
	GradeHard
	// GradeGood means the answer was correct with some effort.
	GradeGood
	// GradeEasy means the answer was correct without hesitation.
	GradeEasy
)

// Valid reports whether g is one of the five enumerated levels.
func (g Grade) Valid() bool {
	return g >= GradeBlackout && g <= GradeEasy
}

// Passing reports whether g counts as a successful recall.
// Grades below GradeGood reset the repetition streak.
func (g Grade) Passing() bool {
	return g >= GradeGood
}

func (g Grade) String() string {
	switch g {
	case GradeBlackout:
		return "blackout"
	case GradeIncorrect:
		return "incorrect"
	case GradeHard:
		return "hard"
	case GradeGood:
		return "good"
	case GradeEasy:
		return "easy"
	default:
		return "unknown"
	}
}
