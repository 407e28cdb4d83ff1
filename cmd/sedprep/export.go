package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sed-source/services/ingest"
	"sed-source/utils"
	"sed-source/views"
)

func newExportCmd() *cobra.Command {
	var nMinValid int

	cmd := &cobra.Command{
		Use:   "export <table> <out.yaml>",
		Short: "Convert a source table to a YAML list of mappings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			sources, err := ingest.ReadSources(args[0], nMinValid)
			if err != nil {
				return err
			}
			if err := views.WriteYAML(args[1], sources); err != nil {
				return err
			}
			utils.L().Info("exported %d sources to %s", len(sources), args[1])
			fmt.Fprintln(cmd.OutOrStdout(), args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&nMinValid, "n-min-valid", 0, "skip sources with this many usable points or fewer")
	return cmd
}
