package cli

import (
	"bufio"
	"bytes"
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skawahara/tango/internal/srs"
	"github.com/skawahara/tango/internal/store"
	"github.com/skawahara/tango/internal/vocab"
)

func newReviewCLIFixture(t *testing.T, input string, phrases ...string) (*ReviewCLI, *vocab.DBRepository, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()
	st := store.New(filepath.Join(t.TempDir(), "snapshot.db"))
	t.Cleanup(func() {
		_ = st.Close()
	})

	repo := vocab.NewDBRepository(st)
	for _, phrase := range phrases {
		_, err := repo.CreateWord(ctx, phrase, "meaning of "+phrase, "example of "+phrase, "")
		require.NoError(t, err)
	}

	var output bytes.Buffer
	reviewCLI := &ReviewCLI{
		repo:         repo,
		scheduler:    srs.NewScheduler(st, srs.DefaultTargetRetention),
		stdinReader:  bufio.NewReader(strings.NewReader(input)),
		stdoutWriter: &output,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		rng:          rand.New(rand.NewSource(1)),
	}
	return reviewCLI, repo, &output
}

func TestReviewCLI_Run_NoDueCards(t *testing.T) {
	reviewCLI, _, output := newReviewCLIFixture(t, "")
	require.NoError(t, reviewCLI.Run(context.Background(), vocab.Today()))
	assert.Contains(t, output.String(), "No cards are due today.")
}

func TestReviewCLI_Run_GradesCard(t *testing.T) {
	ctx := context.Background()
	reviewCLI, repo, output := newReviewCLIFixture(t, "\nn\n", "apple")

	require.NoError(t, reviewCLI.Run(ctx, vocab.Today()))

	text := output.String()
	assert.Contains(t, text, "apple")
	assert.Contains(t, text, "meaning of apple")
	assert.Contains(t, text, "example of apple")
	assert.Contains(t, text, "Session complete: 1 review(s) applied.")

	due, err := repo.GetDueCards(ctx, vocab.Today())
	require.NoError(t, err)
	assert.Empty(t, due, "a NORMAL grade must reschedule the card into the future")
}

func TestReviewCLI_Run_InvalidAnswerReprompts(t *testing.T) {
	reviewCLI, _, output := newReviewCLIFixture(t, "\nmaybe\ne\n", "apple")
	require.NoError(t, reviewCLI.Run(context.Background(), vocab.Today()))
	assert.Contains(t, output.String(), "Please answer e, n, h or q.")
	assert.Contains(t, output.String(), "Session complete: 1 review(s) applied.")
}

func TestReviewCLI_Run_QuitLeavesCardsDue(t *testing.T) {
	ctx := context.Background()
	reviewCLI, repo, output := newReviewCLIFixture(t, "\nq\n", "apple", "banana")

	require.NoError(t, reviewCLI.Run(ctx, vocab.Today()))
	assert.Contains(t, output.String(), "Session complete: 0 review(s) applied.")

	due, err := repo.GetDueCards(ctx, vocab.Today())
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestReviewCLI_Run_EOFEndsSession(t *testing.T) {
	reviewCLI, _, output := newReviewCLIFixture(t, "", "apple")
	require.NoError(t, reviewCLI.Run(context.Background(), vocab.Today()))
	assert.Contains(t, output.String(), "Session complete: 0 review(s) applied.")
}
