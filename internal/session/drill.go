package session

import (
	"math/rand"
	"sort"
	"time"

	"github.com/skawahara/tango/internal/vocab"
)

// DrillSession runs range-based vocabulary drilling over an explicit
// selection of cards. Marking a card wrong re-queues it and records the
// word as a candidate for the caller to save.
type DrillSession struct {
	selector   *Selector
	candidates []vocab.Word
	seen       map[string]struct{}
}

// NewDrillSession creates a drilling session. In random order the cards
// are shuffled; in catalog order they are sorted by key and stay sorted
// when re-queued.
func NewDrillSession(cards []Card, order Order, rng *rand.Rand) *DrillSession {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	items := make([]Card, len(cards))
	copy(items, cards)
	if order == OrderNumber {
		sort.Slice(items, func(i, j int) bool {
			return items[i].Key < items[j].Key
		})
	} else {
		rng.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
	}
	selector := NewSelector(order, items, rng)
	selector.Start()
	return &DrillSession{
		selector: selector,
		seen:     map[string]struct{}{},
	}
}

// Current returns the card being drilled, or false when done.
func (d *DrillSession) Current() (Card, bool) {
	return d.selector.Current()
}

// Done reports whether every card has been marked known.
func (d *DrillSession) Done() bool {
	return d.selector.Done()
}

// MarkKnown removes the current card from the session.
func (d *DrillSession) MarkKnown() {
	d.selector.MarkKnown()
}

// MarkWrong re-queues the current card and records it once as a save
// candidate.
func (d *DrillSession) MarkWrong() {
	card, ok := d.selector.Current()
	if !ok {
		return
	}
	if _, recorded := d.seen[card.Word.ID]; !recorded {
		d.seen[card.Word.ID] = struct{}{}
		d.candidates = append(d.candidates, card.Word)
	}
	d.selector.MarkWrong()
}

// SaveCandidates returns the words marked wrong during the session, in
// first-marked order, for the word-add collaborator to offer saving.
func (d *DrillSession) SaveCandidates() []vocab.Word {
	return d.candidates
}

// Exit abandons the session. Save candidates collected so far remain
// available.
func (d *DrillSession) Exit() {
	d.selector.Exit()
}
