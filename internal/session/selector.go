// Package session implements the dual-pool next-card selection used by
// the daily review and drilling flows.
package session

import (
	"math/rand"
	"sort"
	"time"

	"github.com/skawahara/tango/internal/vocab"
)

// Order controls how the selector picks the next card.
type Order int

const (
	// OrderRandom draws uniformly across both pools.
	OrderRandom Order = iota
	// OrderNumber keeps catalog order within each pool and flips a coin
	// between them.
	OrderNumber
)

// Card is one selectable item. Key is the catalog number, meaningful only
// in OrderNumber mode.
type Card struct {
	Word vocab.Word
	Key  int
}

// Selector holds a fresh pool and a retry pool and yields one current
// card at a time. When both pools are empty the session is finished.
type Selector struct {
	order     Order
	remaining []Card
	retry     []Card
	current   *Card
	rng       *rand.Rand
}

// NewSelector creates a selector over cards in the order given. The
// caller prepares the initial ordering (shuffled, due-sorted, or catalog
// sorted); the selector does not reorder the fresh pool. A nil rng
// falls back to a time-seeded source.
func NewSelector(order Order, cards []Card, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	remaining := make([]Card, len(cards))
	copy(remaining, cards)
	return &Selector{
		order:     order,
		remaining: remaining,
		rng:       rng,
	}
}

// Start draws the first card.
func (s *Selector) Start() {
	s.advance()
}

// Current returns the card being shown, or false when the session is
// finished.
func (s *Selector) Current() (Card, bool) {
	if s.current == nil {
		return Card{}, false
	}
	return *s.current, true
}

// Done reports whether both pools are drained and no card is shown.
func (s *Selector) Done() bool {
	return s.current == nil
}

// MarkKnown removes the current card from the session permanently and
// draws the next one.
func (s *Selector) MarkKnown() {
	s.advance()
}

// MarkWrong returns the current card to the retry pool and draws the
// next one. In random order the card goes to the back of the pool; in
// catalog order it is insertion-sorted by key.
func (s *Selector) MarkWrong() {
	if s.current == nil {
		return
	}
	card := *s.current
	if s.order == OrderNumber {
		at := sort.Search(len(s.retry), func(i int) bool {
			return s.retry[i].Key >= card.Key
		})
		s.retry = append(s.retry, Card{})
		copy(s.retry[at+1:], s.retry[at:])
		s.retry[at] = card
	} else {
		s.retry = append(s.retry, card)
	}
	s.advance()
}

// Exit abandons the session: both pools are dropped and no card remains.
func (s *Selector) Exit() {
	s.remaining = nil
	s.retry = nil
	s.current = nil
}

func (s *Selector) advance() {
	switch {
	case len(s.remaining) == 0 && len(s.retry) == 0:
		s.current = nil
	case len(s.retry) == 0:
		s.popRemaining(0)
	case len(s.remaining) == 0:
		s.popRetry(0)
	case s.order == OrderNumber:
		if s.rng.Intn(2) == 0 {
			s.popRetry(0)
		} else {
			s.popRemaining(0)
		}
	default:
		// Every card across both pools has equal draw probability.
		index := s.rng.Intn(len(s.remaining) + len(s.retry))
		if index < len(s.remaining) {
			s.popRemaining(index)
		} else {
			s.popRetry(index - len(s.remaining))
		}
	}
}

func (s *Selector) popRemaining(index int) {
	card := s.remaining[index]
	s.remaining = append(s.remaining[:index], s.remaining[index+1:]...)
	s.current = &card
}

func (s *Selector) popRetry(index int) {
	card := s.retry[index]
	s.retry = append(s.retry[:index], s.retry[index+1:]...)
	s.current = &card
}
