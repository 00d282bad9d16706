package main

import (
	"github.com/spf13/cobra"

	"github.com/skawahara/tango/internal/cli"
	"github.com/skawahara/tango/internal/srs"
	"github.com/skawahara/tango/internal/vocab"
)

func newReviewCommand() *cobra.Command {
	var asOf string
	command := &cobra.Command{
		Use:   "review",
		Short: "Review the cards that are due today",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			today := vocab.Today()
			if asOf != "" {
				today, err = vocab.ParseDay(asOf)
				if err != nil {
					return err
				}
			}

			st, repo := openStore(cfg)
			defer func() {
				_ = st.Close()
			}()

			scheduler := srs.NewScheduler(st, cfg.SRS.TargetRetention)
			return cli.NewReviewCLI(repo, scheduler).Run(cmd.Context(), today)
		},
	}
	command.Flags().StringVar(&asOf, "as-of", "", "Review cards due as of this day (YYYY-MM-DD)")
	return command
}
