package srs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skawahara/tango/internal/store"
	"github.com/skawahara/tango/internal/vocab"
)

// ReviewResult reports the schedule produced by one grading event.
type ReviewResult struct {
	NewInterval int
	NewDue      vocab.Day
}

// Scheduler applies grades to schedule states and records the audit trail.
type Scheduler struct {
	store           *store.Store
	targetRetention float64
	nowFunc         func() time.Time
}

// NewScheduler creates a scheduler. A targetRetention outside (0, 1)
// falls back to the default.
func NewScheduler(st *store.Store, targetRetention float64) *Scheduler {
	if targetRetention <= 0 || targetRetention >= 1 {
		targetRetention = DefaultTargetRetention
	}
	return &Scheduler{
		store:           st,
		targetRetention: targetRetention,
		nowFunc:         time.Now,
	}
}

// ApplyReview applies a grade to a word's schedule state as of today.
// It updates the state, touches the word, appends a review log entry and
// flushes a snapshot, all as one mutation.
func (s *Scheduler) ApplyReview(ctx context.Context, wordID string, grade Grade, today vocab.Day) (*ReviewResult, error) {
	var result ReviewResult
	err := s.store.Mutate(ctx, func(tx *sqlx.Tx) error {
		var state vocab.ScheduleState
		err := tx.GetContext(ctx, &state, "SELECT * FROM schedule_states WHERE word_id = ?", wordID)
		if errors.Is(err, sql.ErrNoRows) {
			// Every word is created with a schedule state, so a miss
			// means the store is corrupt.
			return fmt.Errorf("%w: %s", vocab.ErrScheduleNotFound, wordID)
		}
		if err != nil {
			return fmt.Errorf("tx.GetContext(schedule_state) > %w", err)
		}

		state.Stability = NextStability(state.Stability, grade)
		state.Reps++
		if grade == GradeHard {
			state.IntervalDays = 0
			state.NextDueDate = today
			state.Lapses++
		} else {
			state.IntervalDays = ComputeIntervalDays(state.Stability, s.targetRetention)
			state.NextDueDate = today.AddDays(state.IntervalDays)
		}

		now := s.nowFunc()
		state.UpdatedAt = now
		if _, err := tx.ExecContext(ctx,
			`UPDATE schedule_states
			SET next_due_date = ?, interval_days = ?, stability = ?, reps = ?, lapses = ?, updated_at = ?
			WHERE word_id = ?`,
			state.NextDueDate, state.IntervalDays, state.Stability, state.Reps, state.Lapses,
			state.UpdatedAt, state.WordID); err != nil {
			return fmt.Errorf("tx.ExecContext(update schedule_state) > %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE words SET updated_at = ? WHERE id = ?", now, wordID); err != nil {
			return fmt.Errorf("tx.ExecContext(touch word) > %w", err)
		}

		entry := vocab.ReviewLogEntry{
			ID:          uuid.NewString(),
			WordID:      wordID,
			ReviewedAt:  now,
			Grade:       grade.String(),
			NewInterval: state.IntervalDays,
			NewDueDate:  state.NextDueDate,
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO review_logs (id, word_id, reviewed_at, grade, new_interval, new_due_date)
			VALUES (?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.WordID, entry.ReviewedAt, entry.Grade, entry.NewInterval, entry.NewDueDate); err != nil {
			return fmt.Errorf("tx.ExecContext(insert review_log) > %w", err)
		}

		result = ReviewResult{NewInterval: state.IntervalDays, NewDue: state.NextDueDate}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
