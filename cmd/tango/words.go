package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skawahara/tango/internal/vocab"
)

func newWordsCommand() *cobra.Command {
	wordsCommand := &cobra.Command{
		Use:   "words",
		Short: "Manage stored vocabulary words",
	}

	wordsCommand.AddCommand(newWordsListCommand())
	wordsCommand.AddCommand(newWordsAddCommand())
	wordsCommand.AddCommand(newWordsEditCommand())
	wordsCommand.AddCommand(newWordsDeleteCommand())

	return wordsCommand
}

func newWordsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every word with its schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			st, repo := openStore(cfg)
			defer func() {
				_ = st.Close()
			}()

			words, err := repo.GetAllWords(cmd.Context())
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "#\tPHRASE\tMEANING\tDUE\tINTERVAL\tREPS\tID")
			for index, word := range words {
				due, interval, reps := "-", "-", "-"
				if word.NextDueDate != nil {
					due = word.NextDueDate.String()
				}
				if word.IntervalDays != nil {
					interval = fmt.Sprintf("%d", *word.IntervalDays)
				}
				if word.Reps != nil {
					reps = fmt.Sprintf("%d", *word.Reps)
				}
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					index+1, word.Phrase, word.Meaning, due, interval, reps, word.ID)
			}
			return writer.Flush()
		},
	}
}

func newWordsAddCommand() *cobra.Command {
	var meaning, example, source string
	command := &cobra.Command{
		Use:   "add <phrase>",
		Short: "Add a single word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			st, repo := openStore(cfg)
			defer func() {
				_ = st.Close()
			}()

			word, err := repo.CreateWord(cmd.Context(), args[0], meaning, example, source)
			if err != nil {
				return err
			}
			fmt.Printf("Added %q (%s)\n", word.Phrase, word.ID)
			return nil
		},
	}
	command.Flags().StringVar(&meaning, "meaning", "", "Meaning of the word")
	command.Flags().StringVar(&example, "example", "", "Example sentence")
	command.Flags().StringVar(&source, "source", "", "Where the word came from")
	return command
}

func newWordsEditCommand() *cobra.Command {
	var phrase, meaning, example, source string
	command := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a word's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var patch vocab.WordPatch
			if cmd.Flags().Changed("phrase") {
				patch.Phrase = &phrase
			}
			if cmd.Flags().Changed("meaning") {
				patch.Meaning = &meaning
			}
			if cmd.Flags().Changed("example") {
				patch.Example = &example
			}
			if cmd.Flags().Changed("source") {
				patch.Source = &source
			}

			st, repo := openStore(cfg)
			defer func() {
				_ = st.Close()
			}()

			word, err := repo.UpdateWord(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %q\n", word.Phrase)
			return nil
		},
	}
	command.Flags().StringVar(&phrase, "phrase", "", "New phrase")
	command.Flags().StringVar(&meaning, "meaning", "", "New meaning")
	command.Flags().StringVar(&example, "example", "", "New example sentence")
	command.Flags().StringVar(&source, "source", "", "New source")
	return command
}

func newWordsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a word and its review history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			st, repo := openStore(cfg)
			defer func() {
				_ = st.Close()
			}()

			if err := repo.DeleteWord(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}
