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

	"github.com/skawahara/tango/internal/session"
	"github.com/skawahara/tango/internal/store"
	"github.com/skawahara/tango/internal/vocab"
)

func newDrillCLIFixture(t *testing.T, input string, phrases ...string) (*DrillCLI, *bytes.Buffer) {
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

	var output bytes.Buffer
	drillCLI := &DrillCLI{
		repo:         repo,
		stdinReader:  bufio.NewReader(strings.NewReader(input)),
		stdoutWriter: &output,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		rng:          rand.New(rand.NewSource(1)),
	}
	return drillCLI, &output
}

func TestDrillCLI_Run_EmptyRange(t *testing.T) {
	drillCLI, output := newDrillCLIFixture(t, "")
	require.NoError(t, drillCLI.Run(context.Background(), 1, 0, session.OrderNumber))
	assert.Contains(t, output.String(), "No words in the selected range.")
}

func TestDrillCLI_Run_WrongWordIsListedForRevisit(t *testing.T) {
	// One word: mark it wrong once, then known.
	drillCLI, output := newDrillCLIFixture(t, "\nw\n\nk\n", "apple")

	require.NoError(t, drillCLI.Run(context.Background(), 1, 0, session.OrderNumber))

	text := output.String()
	assert.Contains(t, text, "#1 apple")
	assert.Contains(t, text, "meaning of apple")
	assert.Contains(t, text, "Words to revisit:")
	assert.Contains(t, text, "apple - meaning of apple")
	assert.Contains(t, text, "Drill session finished.")
}

func TestDrillCLI_Run_RangeFilters(t *testing.T) {
	// Three words in catalog order; drill only #2.
	drillCLI, output := newDrillCLIFixture(t, "\nk\n", "apple", "banana", "cherry")

	require.NoError(t, drillCLI.Run(context.Background(), 2, 2, session.OrderNumber))

	text := output.String()
	assert.Contains(t, text, "Starting drill session with 1 word(s)")
	assert.NotContains(t, text, "#1 ")
	assert.NotContains(t, text, "#3 ")
}

func TestDrillCLI_Run_QuitEndsSession(t *testing.T) {
	drillCLI, output := newDrillCLIFixture(t, "\nq\n", "apple", "banana")
	require.NoError(t, drillCLI.Run(context.Background(), 1, 0, session.OrderNumber))
	assert.Contains(t, output.String(), "Drill session finished.")
}
