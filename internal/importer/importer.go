// Package importer provides the transactional, dedup-aware bulk loader.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skawahara/tango/internal/store"
	"github.com/skawahara/tango/internal/vocab"
)

// DefaultBatchSize is how many rows are processed between progress yields.
const DefaultBatchSize = 50

// Row is one raw import record, as produced by an external fetch/parse
// collaborator. All fields but Phrase are optional.
type Row struct {
	Phrase  string `yaml:"phrase"`
	Meaning string `yaml:"meaning"`
	Example string `yaml:"example"`
	Source  string `yaml:"source"`
	Date    string `yaml:"date"`
}

// Result counts the outcome of every row: Added+Skipped+Failed equals the
// number of input rows.
type Result struct {
	Added   int
	Skipped int
	Failed  int
}

// Progress is invoked between row batches while the import transaction is
// still open, so a long import does not run silently.
type Progress func(processed, total int)

// Importer loads row batches through the repository into the store.
type Importer struct {
	store     *store.Store
	batchSize int
	nowFunc   func() time.Time
}

// New creates an importer. A non-positive batchSize falls back to the
// default.
func New(st *store.Store, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{
		store:     st,
		batchSize: batchSize,
		nowFunc:   time.Now,
	}
}

// Run imports rows in one transaction while holding the store's write
// lock. Rows with an empty phrase or a phrase already stored (or already
// seen earlier in the same batch) are skipped; a failing row is counted
// and the loop continues. A systemic failure rolls back everything and
// propagates. Whatever was committed is flushed in a terminal cleanup
// step regardless of outcome.
func (i *Importer) Run(ctx context.Context, rows []Row, onProgress Progress) (*Result, error) {
	var result Result
	err := i.store.Mutate(ctx, func(tx *sqlx.Tx) error {
		existing, err := vocab.PhraseSet(ctx, tx)
		if err != nil {
			return err
		}

		for index, row := range rows {
			if index > 0 && index%i.batchSize == 0 && onProgress != nil {
				onProgress(index, len(rows))
			}

			phrase := strings.TrimSpace(row.Phrase)
			if phrase == "" {
				result.Skipped++
				continue
			}
			normalized := vocab.Normalize(phrase)
			if _, seen := existing[normalized]; seen {
				result.Skipped++
				continue
			}

			// A failed row must leave nothing behind, including the word
			// half of a word/schedule pair.
			if _, err := tx.ExecContext(ctx, "SAVEPOINT import_row"); err != nil {
				return fmt.Errorf("tx.ExecContext(savepoint) > %w", err)
			}
			if err := i.insertRow(ctx, tx, row, phrase); err != nil {
				slog.Debug("import row failed", "phrase", phrase, "error", err)
				if _, err := tx.ExecContext(ctx, "ROLLBACK TO import_row"); err != nil {
					return fmt.Errorf("tx.ExecContext(rollback to savepoint) > %w", err)
				}
				result.Failed++
			} else {
				existing[normalized] = struct{}{}
				result.Added++
			}
			if _, err := tx.ExecContext(ctx, "RELEASE import_row"); err != nil {
				return fmt.Errorf("tx.ExecContext(release savepoint) > %w", err)
			}
		}

		if onProgress != nil {
			onProgress(len(rows), len(rows))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (i *Importer) insertRow(ctx context.Context, tx *sqlx.Tx, row Row, phrase string) error {
	createdAt := i.nowFunc()
	createdOn := vocab.NewDay(createdAt)
	if row.Date != "" {
		day, err := vocab.ParseDay(strings.TrimSpace(row.Date))
		if err != nil {
			return err
		}
		createdAt = day.Time
		createdOn = day
	}

	word := vocab.NewWord(phrase,
		strings.TrimSpace(row.Meaning),
		strings.TrimSpace(row.Example),
		strings.TrimSpace(row.Source),
		createdAt)
	schedule := vocab.NewScheduleState(word.ID, createdOn)
	return vocab.InsertWordWithSchedule(ctx, tx, &word, &schedule)
}
