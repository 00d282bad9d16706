package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skawahara/tango/internal/importer"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import vocabulary rows from a CSV or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rows, err := importer.ReadRowFile(args[0])
			if err != nil {
				return err
			}

			st, _ := openStore(cfg)
			defer func() {
				_ = st.Close()
			}()

			imp := importer.New(st, cfg.Import.BatchSize)
			result, err := imp.Run(cmd.Context(), rows, func(processed, total int) {
				fmt.Printf("\rImporting... %d/%d", processed, total)
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nImport finished: %d added, %d skipped, %d failed\n",
				result.Added, result.Skipped, result.Failed)
			return nil
		},
	}
}
