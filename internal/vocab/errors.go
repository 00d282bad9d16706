package vocab

import "errors"

// Typed errors returned by repository operations. The core never renders
// user-facing messages; callers translate these for their UI.
var (
	// ErrEmptyPhrase is returned when a phrase is blank after trimming.
	ErrEmptyPhrase = errors.New("phrase cannot be empty")

	// ErrDuplicatePhrase is returned when another word already uses the
	// same normalized phrase.
	ErrDuplicatePhrase = errors.New("phrase already exists")

	// ErrWordNotFound indicates that the requested word does not exist.
	ErrWordNotFound = errors.New("word not found")

	// ErrScheduleNotFound indicates a word without a schedule state. Every
	// word is created with one, so this is an integrity failure rather
	// than a recoverable condition.
	ErrScheduleNotFound = errors.New("schedule state not found")
)
