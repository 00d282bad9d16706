package vocab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skawahara/tango/internal/store"
)

// Repository defines typed read/write operations over words, schedule
// states and the append-only review log.
type Repository interface {
	GetDueCards(ctx context.Context, asOf Day) ([]WordCard, error)
	GetAllWords(ctx context.Context) ([]WordCard, error)
	GetWord(ctx context.Context, id string) (*Word, error)
	CreateWord(ctx context.Context, phrase, meaning, example, source string) (*Word, error)
	UpdateWord(ctx context.Context, id string, patch WordPatch) (*Word, error)
	DeleteWord(ctx context.Context, id string) error
	GetReviewLog(ctx context.Context, wordID string) ([]ReviewLogEntry, error)
}

// DBRepository implements Repository on top of the persistent store. Every
// mutating operation runs in one transaction and flushes a snapshot.
type DBRepository struct {
	store *store.Store
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(st *store.Store) *DBRepository {
	return &DBRepository{store: st}
}

const wordCardColumns = `w.id, w.phrase, w.normalized_phrase, w.meaning, w.example, w.source, w.created_at, w.updated_at,
	s.next_due_date, s.interval_days, s.stability, s.reps, s.lapses`

// GetDueCards returns words due on or before asOf, ordered by due date
// ascending then creation time ascending.
func (r *DBRepository) GetDueCards(ctx context.Context, asOf Day) ([]WordCard, error) {
	db, err := r.store.Open(ctx)
	if err != nil {
		return nil, err
	}
	var cards []WordCard
	if err := db.SelectContext(ctx, &cards,
		`SELECT `+wordCardColumns+`
		FROM words w
		JOIN schedule_states s ON s.word_id = w.id
		WHERE s.next_due_date <= ?
		ORDER BY s.next_due_date, w.created_at`,
		asOf); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due cards) > %w", err)
	}
	return cards, nil
}

// GetAllWords returns every word with its schedule state when one exists,
// ordered by creation time ascending then phrase case-insensitive ascending.
func (r *DBRepository) GetAllWords(ctx context.Context) ([]WordCard, error) {
	db, err := r.store.Open(ctx)
	if err != nil {
		return nil, err
	}
	var cards []WordCard
	if err := db.SelectContext(ctx, &cards,
		`SELECT `+wordCardColumns+`
		FROM words w
		LEFT JOIN schedule_states s ON s.word_id = w.id
		ORDER BY w.created_at, LOWER(w.phrase)`); err != nil {
		return nil, fmt.Errorf("db.SelectContext(all words) > %w", err)
	}
	return cards, nil
}

// GetWord returns a word by id, or ErrWordNotFound.
func (r *DBRepository) GetWord(ctx context.Context, id string) (*Word, error) {
	db, err := r.store.Open(ctx)
	if err != nil {
		return nil, err
	}
	var word Word
	err = db.GetContext(ctx, &word, "SELECT * FROM words WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrWordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(word) > %w", err)
	}
	return &word, nil
}

// CreateWord inserts a word with its default schedule state. The phrase is
// trimmed and checked against existing normalized phrases.
func (r *DBRepository) CreateWord(ctx context.Context, phrase, meaning, example, source string) (*Word, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil, ErrEmptyPhrase
	}

	now := time.Now()
	word := NewWord(phrase, strings.TrimSpace(meaning), strings.TrimSpace(example), strings.TrimSpace(source), now)
	schedule := NewScheduleState(word.ID, NewDay(now))

	err := r.store.Mutate(ctx, func(tx *sqlx.Tx) error {
		taken, err := phraseTaken(ctx, tx, Normalize(phrase), "")
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %s", ErrDuplicatePhrase, phrase)
		}
		return InsertWordWithSchedule(ctx, tx, &word, &schedule)
	})
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// UpdateWord applies a patch to a word. Text fields are trimmed; an empty
// resulting phrase or a phrase colliding with another word is rejected.
func (r *DBRepository) UpdateWord(ctx context.Context, id string, patch WordPatch) (*Word, error) {
	var updated Word
	err := r.store.Mutate(ctx, func(tx *sqlx.Tx) error {
		var word Word
		err := tx.GetContext(ctx, &word, "SELECT * FROM words WHERE id = ?", id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrWordNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("tx.GetContext(word) > %w", err)
		}

		if patch.Phrase != nil {
			word.Phrase = strings.TrimSpace(*patch.Phrase)
		}
		if patch.Meaning != nil {
			word.Meaning = strings.TrimSpace(*patch.Meaning)
		}
		if patch.Example != nil {
			word.Example = strings.TrimSpace(*patch.Example)
		}
		if patch.Source != nil {
			word.Source = strings.TrimSpace(*patch.Source)
		}
		if word.Phrase == "" {
			return ErrEmptyPhrase
		}
		word.NormalizedPhrase = Normalize(word.Phrase)

		taken, err := phraseTaken(ctx, tx, word.NormalizedPhrase, word.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %s", ErrDuplicatePhrase, word.Phrase)
		}

		word.UpdatedAt = time.Now()
		if _, err := tx.ExecContext(ctx,
			`UPDATE words SET phrase = ?, normalized_phrase = ?, meaning = ?, example = ?, source = ?, updated_at = ? WHERE id = ?`,
			word.Phrase, word.NormalizedPhrase, word.Meaning, word.Example, word.Source, word.UpdatedAt, word.ID); err != nil {
			return fmt.Errorf("tx.ExecContext(update word) > %w", err)
		}
		updated = word
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteWord removes a word together with its schedule state and review
// log entries, all in one transaction.
func (r *DBRepository) DeleteWord(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM review_logs WHERE word_id = ?", id); err != nil {
			return fmt.Errorf("tx.ExecContext(delete review_logs) > %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM schedule_states WHERE word_id = ?", id); err != nil {
			return fmt.Errorf("tx.ExecContext(delete schedule_state) > %w", err)
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM words WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(delete word) > %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected() > %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: %s", ErrWordNotFound, id)
		}
		return nil
	})
}

// GetReviewLog returns the audit trail for a word, oldest first.
func (r *DBRepository) GetReviewLog(ctx context.Context, wordID string) ([]ReviewLogEntry, error) {
	db, err := r.store.Open(ctx)
	if err != nil {
		return nil, err
	}
	var entries []ReviewLogEntry
	if err := db.SelectContext(ctx, &entries,
		"SELECT * FROM review_logs WHERE word_id = ? ORDER BY reviewed_at", wordID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs) > %w", err)
	}
	return entries, nil
}

// phraseTaken reports whether another word already uses the normalized
// phrase. excludeID skips the record being edited itself.
func phraseTaken(ctx context.Context, q sqlx.QueryerContext, normalized, excludeID string) (bool, error) {
	var id string
	err := sqlx.GetContext(ctx, q, &id,
		"SELECT id FROM words WHERE normalized_phrase = ? AND id != ?", normalized, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlx.GetContext(phrase lookup) > %w", err)
	}
	return true, nil
}

// PhraseSet loads every normalized phrase currently stored. The import
// pipeline preloads this once per batch transaction.
func PhraseSet(ctx context.Context, q sqlx.QueryerContext) (map[string]struct{}, error) {
	var phrases []string
	if err := sqlx.SelectContext(ctx, q, &phrases, "SELECT normalized_phrase FROM words"); err != nil {
		return nil, fmt.Errorf("sqlx.SelectContext(phrases) > %w", err)
	}
	set := make(map[string]struct{}, len(phrases))
	for _, phrase := range phrases {
		set[phrase] = struct{}{}
	}
	return set, nil
}

// InsertWordWithSchedule inserts a word and its paired schedule state.
func InsertWordWithSchedule(ctx context.Context, q sqlx.ExecerContext, word *Word, schedule *ScheduleState) error {
	if _, err := q.ExecContext(ctx,
		`INSERT INTO words (id, phrase, normalized_phrase, meaning, example, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		word.ID, word.Phrase, word.NormalizedPhrase, word.Meaning, word.Example, word.Source,
		word.CreatedAt, word.UpdatedAt); err != nil {
		return fmt.Errorf("q.ExecContext(insert word) > %w", err)
	}
	if _, err := q.ExecContext(ctx,
		`INSERT INTO schedule_states (word_id, next_due_date, interval_days, stability, reps, lapses, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		schedule.WordID, schedule.NextDueDate, schedule.IntervalDays, schedule.Stability,
		schedule.Reps, schedule.Lapses, schedule.UpdatedAt); err != nil {
		return fmt.Errorf("q.ExecContext(insert schedule_state) > %w", err)
	}
	return nil
}
