package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skawahara/tango/internal/cli"
	"github.com/skawahara/tango/internal/session"
)

func newDrillCommand() *cobra.Command {
	var (
		from  int
		to    int
		order string
	)
	command := &cobra.Command{
		Use:   "drill",
		Short: "Drill a numbered range of the vocabulary catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var drillOrder session.Order
			switch order {
			case "random":
				drillOrder = session.OrderRandom
			case "number":
				drillOrder = session.OrderNumber
			default:
				return fmt.Errorf("unknown order %q: expected random or number", order)
			}

			st, repo := openStore(cfg)
			defer func() {
				_ = st.Close()
			}()

			return cli.NewDrillCLI(repo).Run(cmd.Context(), from, to, drillOrder)
		},
	}
	command.Flags().IntVar(&from, "from", 1, "First catalog number to drill")
	command.Flags().IntVar(&to, "to", 0, "Last catalog number to drill (0 means the end)")
	command.Flags().StringVar(&order, "order", "random", "Card order: random or number")
	return command
}
