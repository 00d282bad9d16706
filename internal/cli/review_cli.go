// Package cli provides the interactive review and drilling sessions.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/skawahara/tango/internal/session"
	"github.com/skawahara/tango/internal/srs"
	"github.com/skawahara/tango/internal/vocab"
)

// ReviewCLI runs the interactive daily review session.
type ReviewCLI struct {
	repo      vocab.Repository
	scheduler *srs.Scheduler

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	rng          *rand.Rand
}

// NewReviewCLI creates a review CLI reading from stdin and writing to
// stdout.
func NewReviewCLI(repo vocab.Repository, scheduler *srs.Scheduler) *ReviewCLI {
	return &ReviewCLI{
		repo:         repo,
		scheduler:    scheduler,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

// Run reviews every card due as of today. Grading EASY or NORMAL retires
// a card for the session; HARD re-queues it.
func (c *ReviewCLI) Run(ctx context.Context, today vocab.Day) error {
	cards, err := c.repo.GetDueCards(ctx, today)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Fprintln(c.stdoutWriter, "No cards are due today.")
		return nil
	}
	fmt.Fprintf(c.stdoutWriter, "Starting review session with %d due card(s)\n\n", len(cards))

	reviewSession := session.NewReviewSession(cards, c.scheduler, today, c.rng)
	for {
		card, ok := reviewSession.Current()
		if !ok {
			break
		}

		_, _ = c.bold.Fprintf(c.stdoutWriter, "%s\n", card.Word.Phrase)
		if card.Word.Example != "" {
			_, _ = c.italic.Fprintf(c.stdoutWriter, "%s\n", card.Word.Example)
		}
		fmt.Fprint(c.stdoutWriter, "Press Enter to reveal the meaning...")
		if _, err := c.readLine(); err != nil {
			reviewSession.Exit()
			break
		}
		fmt.Fprintf(c.stdoutWriter, "%s\n", card.Word.Meaning)

		grade, quit, err := c.readGrade()
		if err != nil {
			return err
		}
		if quit {
			reviewSession.Exit()
			break
		}

		result, err := reviewSession.Grade(ctx, grade)
		if err != nil {
			return err
		}
		if result.NewInterval == 0 {
			fmt.Fprint(c.stdoutWriter, "Again today.\n\n")
		} else {
			fmt.Fprintf(c.stdoutWriter, "Next review in %d day(s), on %s.\n\n", result.NewInterval, result.NewDue)
		}
	}

	fmt.Fprintf(c.stdoutWriter, "Session complete: %d review(s) applied.\n", reviewSession.Reviewed())
	return nil
}

func (c *ReviewCLI) readGrade() (srs.Grade, bool, error) {
	for {
		fmt.Fprint(c.stdoutWriter, "[e]asy / [n]ormal / [h]ard / [q]uit: ")
		input, err := c.readLine()
		if err != nil {
			return 0, true, nil
		}
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "e", "easy":
			return srs.GradeEasy, false, nil
		case "n", "normal":
			return srs.GradeNormal, false, nil
		case "h", "hard":
			return srs.GradeHard, false, nil
		case "q", "quit":
			return 0, true, nil
		}
		fmt.Fprintln(c.stdoutWriter, "Please answer e, n, h or q.")
	}
}

func (c *ReviewCLI) readLine() (string, error) {
	line, err := c.stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	if err != nil && line == "" {
		return "", io.EOF
	}
	return line, nil
}
