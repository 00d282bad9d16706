// Package vocab provides vocabulary domain models and repository operations.
package vocab

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultStability is the memory stability assigned to a newly created word.
const DefaultStability = 2.0

// Word represents a vocabulary item. NormalizedPhrase is the stored form
// of Normalize(Phrase); the unique index lives on it so uniqueness and
// application-side comparisons use the same case folding.
type Word struct {
	ID               string    `db:"id"`
	Phrase           string    `db:"phrase"`
	NormalizedPhrase string    `db:"normalized_phrase"`
	Meaning          string    `db:"meaning"`
	Example          string    `db:"example"`
	Source           string    `db:"source"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// NewWord creates a Word with a random ID and the given creation time.
func NewWord(phrase, meaning, example, source string, createdAt time.Time) Word {
	return Word{
		ID:               uuid.NewString(),
		Phrase:           phrase,
		NormalizedPhrase: Normalize(phrase),
		Meaning:          meaning,
		Example:          example,
		Source:           source,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
}

// ScheduleState holds the spaced-repetition state for exactly one word.
type ScheduleState struct {
	WordID       string    `db:"word_id"`
	NextDueDate  Day       `db:"next_due_date"`
	IntervalDays int       `db:"interval_days"`
	Stability    float64   `db:"stability"`
	Reps         int       `db:"reps"`
	Lapses       int       `db:"lapses"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewScheduleState creates the default schedule state for a word created on
// the given day: due immediately, one-day interval, default stability.
func NewScheduleState(wordID string, createdOn Day) ScheduleState {
	return ScheduleState{
		WordID:       wordID,
		NextDueDate:  createdOn,
		IntervalDays: 1,
		Stability:    DefaultStability,
		Reps:         0,
		Lapses:       0,
		UpdatedAt:    createdOn.Time,
	}
}

// ReviewLogEntry is an append-only audit record of one grading event.
type ReviewLogEntry struct {
	ID          string    `db:"id"`
	WordID      string    `db:"word_id"`
	ReviewedAt  time.Time `db:"reviewed_at"`
	Grade       string    `db:"grade"`
	NewInterval int       `db:"new_interval"`
	NewDueDate  Day       `db:"new_due_date"`
}

// WordCard is a word joined with its schedule state. The schedule fields are
// nil for words that have no schedule state.
type WordCard struct {
	Word
	NextDueDate  *Day     `db:"next_due_date"`
	IntervalDays *int     `db:"interval_days"`
	Stability    *float64 `db:"stability"`
	Reps         *int     `db:"reps"`
	Lapses       *int     `db:"lapses"`
}

// WordPatch carries the fields to change in an update. Nil fields keep their
// current values.
type WordPatch struct {
	Phrase  *string
	Meaning *string
	Example *string
	Source  *string
}

// Normalize returns the form of a phrase used for uniqueness checks.
func Normalize(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}
