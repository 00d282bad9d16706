package session

import (
	"context"
	"math/rand"

	"github.com/skawahara/tango/internal/srs"
	"github.com/skawahara/tango/internal/vocab"
)

// ReviewSession runs one daily due-card review. Cards graded EASY or
// NORMAL leave the session permanently; cards graded HARD return to the
// retry pool so they resurface before the session ends.
type ReviewSession struct {
	selector  *Selector
	scheduler *srs.Scheduler
	today     vocab.Day
	reviewed  int
}

// NewReviewSession creates a session over due cards. The cards are
// expected in due-date then creation order, as returned by the
// repository; draws are randomized across the pools.
func NewReviewSession(cards []vocab.WordCard, scheduler *srs.Scheduler, today vocab.Day, rng *rand.Rand) *ReviewSession {
	items := make([]Card, 0, len(cards))
	for _, card := range cards {
		items = append(items, Card{Word: card.Word})
	}
	selector := NewSelector(OrderRandom, items, rng)
	selector.Start()
	return &ReviewSession{
		selector:  selector,
		scheduler: scheduler,
		today:     today,
	}
}

// Current returns the card being reviewed, or false when done.
func (r *ReviewSession) Current() (Card, bool) {
	return r.selector.Current()
}

// Done reports whether every card has been graded out of the session.
func (r *ReviewSession) Done() bool {
	return r.selector.Done()
}

// Reviewed returns the number of gradings applied so far.
func (r *ReviewSession) Reviewed() int {
	return r.reviewed
}

// Grade applies a grade to the current card: the schedule state is
// updated and persisted, then the card leaves the session or rejoins the
// retry pool depending on the grade.
func (r *ReviewSession) Grade(ctx context.Context, grade srs.Grade) (*srs.ReviewResult, error) {
	card, ok := r.selector.Current()
	if !ok {
		return nil, nil
	}
	result, err := r.scheduler.ApplyReview(ctx, card.Word.ID, grade, r.today)
	if err != nil {
		return nil, err
	}
	r.reviewed++
	if grade == srs.GradeHard {
		r.selector.MarkWrong()
	} else {
		r.selector.MarkKnown()
	}
	return result, nil
}

// Exit abandons the session.
func (r *ReviewSession) Exit() {
	r.selector.Exit()
}
