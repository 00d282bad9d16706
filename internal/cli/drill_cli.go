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
	"github.com/skawahara/tango/internal/vocab"
)

// DrillCLI runs the interactive range-based drilling session. Words are
// numbered by catalog position; the caller picks a range and an order.
type DrillCLI struct {
	repo vocab.Repository

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	rng          *rand.Rand
}

// NewDrillCLI creates a drill CLI reading from stdin and writing to
// stdout.
func NewDrillCLI(repo vocab.Repository) *DrillCLI {
	return &DrillCLI{
		repo:         repo,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

// Run drills the words with catalog numbers in [from, to]. Marking a
// card wrong re-queues it and lists the word at session end so it can be
// revisited.
func (c *DrillCLI) Run(ctx context.Context, from, to int, order session.Order) error {
	words, err := c.repo.GetAllWords(ctx)
	if err != nil {
		return err
	}

	cards := make([]session.Card, 0, len(words))
	for index, word := range words {
		key := index + 1
		if key < from || (to > 0 && key > to) {
			continue
		}
		cards = append(cards, session.Card{Word: word.Word, Key: key})
	}
	if len(cards) == 0 {
		fmt.Fprintln(c.stdoutWriter, "No words in the selected range.")
		return nil
	}
	fmt.Fprintf(c.stdoutWriter, "Starting drill session with %d word(s)\n\n", len(cards))

	drill := session.NewDrillSession(cards, order, c.rng)
	for {
		card, ok := drill.Current()
		if !ok {
			break
		}

		_, _ = c.bold.Fprintf(c.stdoutWriter, "#%d %s\n", card.Key, card.Word.Phrase)
		if card.Word.Example != "" {
			_, _ = c.italic.Fprintf(c.stdoutWriter, "%s\n", card.Word.Example)
		}
		fmt.Fprint(c.stdoutWriter, "Press Enter to reveal the meaning...")
		if _, err := c.readLine(); err != nil {
			drill.Exit()
			break
		}
		fmt.Fprintf(c.stdoutWriter, "%s\n", card.Word.Meaning)

		known, quit := c.readAnswer()
		if quit {
			drill.Exit()
			break
		}
		if known {
			drill.MarkKnown()
		} else {
			drill.MarkWrong()
		}
		fmt.Fprintln(c.stdoutWriter)
	}

	candidates := drill.SaveCandidates()
	if len(candidates) > 0 {
		fmt.Fprintln(c.stdoutWriter, "Words to revisit:")
		for _, word := range candidates {
			fmt.Fprintf(c.stdoutWriter, "  %s - %s\n", word.Phrase, word.Meaning)
		}
	}
	fmt.Fprintln(c.stdoutWriter, "Drill session finished.")
	return nil
}

func (c *DrillCLI) readAnswer() (known, quit bool) {
	for {
		fmt.Fprint(c.stdoutWriter, "[k]nown / [w]rong / [q]uit: ")
		input, err := c.readLine()
		if err != nil {
			return false, true
		}
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "k", "known":
			return true, false
		case "w", "wrong":
			return false, false
		case "q", "quit":
			return false, true
		}
		fmt.Fprintln(c.stdoutWriter, "Please answer k, w or q.")
	}
}

func (c *DrillCLI) readLine() (string, error) {
	line, err := c.stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	if err != nil && line == "" {
		return "", io.EOF
	}
	return line, nil
}
