package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sed-source/services/ingest"
)

func newInspectCmd() *cobra.Command {
	var (
		nMinValid int
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "inspect <table>",
		Short: "Print each source with its log fluxes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			sources, err := ingest.ReadSources(args[0], nMinValid)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, s := range sources {
				if limit > 0 && i >= limit {
					break
				}
				fmt.Fprintln(out, s.String())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&nMinValid, "n-min-valid", 0, "skip sources with this many usable points or fewer")
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many sources (0 = all)")
	return cmd
}
