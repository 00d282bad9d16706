package session

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skawahara/tango/internal/srs"
	"github.com/skawahara/tango/internal/store"
	"github.com/skawahara/tango/internal/vocab"
)

func newReviewFixture(t *testing.T, phrases ...string) (*srs.Scheduler, *vocab.DBRepository, []vocab.WordCard) {
	t.Helper()
	ctx := context.Background()
	st := store.New(filepath.Join(t.TempDir(), "snapshot.db"))
	t.Cleanup(func() {
		_ = st.Close()
	})

	repo := vocab.NewDBRepository(st)
	for _, phrase := range phrases {
		_, err := repo.CreateWord(ctx, phrase, "meaning of "+phrase, "", "")
		require.NoError(t, err)
	}
	cards, err := repo.GetDueCards(ctx, vocab.Today())
	require.NoError(t, err)
	require.Len(t, cards, len(phrases))

	return srs.NewScheduler(st, srs.DefaultTargetRetention), repo, cards
}

func TestReviewSession_EasyAndNormalRetireCards(t *testing.T) {
	ctx := context.Background()
	scheduler, repo, cards := newReviewFixture(t, "apple", "banana")

	reviewSession := NewReviewSession(cards, scheduler, vocab.Today(), rand.New(rand.NewSource(1)))

	grades := []srs.Grade{srs.GradeEasy, srs.GradeNormal}
	for _, grade := range grades {
		_, ok := reviewSession.Current()
		require.True(t, ok)
		result, err := reviewSession.Grade(ctx, grade)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.GreaterOrEqual(t, result.NewInterval, 1)
	}
	assert.True(t, reviewSession.Done())
	assert.Equal(t, 2, reviewSession.Reviewed())

	// Both cards were rescheduled into the future, so nothing is due.
	due, err := repo.GetDueCards(ctx, vocab.Today())
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestReviewSession_HardCardResurfaces(t *testing.T) {
	ctx := context.Background()
	scheduler, _, cards := newReviewFixture(t, "apple")

	reviewSession := NewReviewSession(cards, scheduler, vocab.Today(), rand.New(rand.NewSource(2)))

	// Grade the only card HARD repeatedly: it must stay selectable.
	for round := 0; round < 3; round++ {
		card, ok := reviewSession.Current()
		require.True(t, ok, "round %d", round)
		assert.Equal(t, "apple", card.Word.Phrase)

		result, err := reviewSession.Grade(ctx, srs.GradeHard)
		require.NoError(t, err)
		assert.Equal(t, 0, result.NewInterval)
		assert.Equal(t, vocab.Today().String(), result.NewDue.String())
	}
	assert.False(t, reviewSession.Done())

	// Once graded NORMAL it leaves the session for good.
	_, err := reviewSession.Grade(ctx, srs.GradeNormal)
	require.NoError(t, err)
	assert.True(t, reviewSession.Done())
	assert.Equal(t, 4, reviewSession.Reviewed())
}

func TestReviewSession_ExitAbandonsRemainingCards(t *testing.T) {
	scheduler, _, cards := newReviewFixture(t, "apple", "banana", "cherry")

	reviewSession := NewReviewSession(cards, scheduler, vocab.Today(), rand.New(rand.NewSource(3)))
	reviewSession.Exit()
	assert.True(t, reviewSession.Done())
	assert.Equal(t, 0, reviewSession.Reviewed())
}
