package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"sed-source/controller"
	"sed-source/services/ingest"
	"sed-source/utils"
)

func newPrepCmd() *cobra.Command {
	var (
		input     string
		outDir    string
		nMinValid int
		workers   int
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "prep [table]",
		Short: "Filter a source table and write log fluxes and weights",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer utils.L().Close()

			if len(args) == 1 {
				cfg.Input.Path = args[0]
			} else if input != "" {
				cfg.Input.Path = input
			}
			flags := cmd.Flags()
			if flags.Changed("out") {
				cfg.Storage.BaseDir = outDir
			}
			if flags.Changed("n-min-valid") {
				cfg.Input.NMinValid = nMinValid
			}
			if flags.Changed("workers") {
				cfg.Transform.Workers = workers
			}
			if flags.Changed("strict-domain") {
				cfg.Transform.StrictDomain = strict
			}
			if cfg.Input.Path == "" {
				return fmt.Errorf("no input table given")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if !filepath.IsAbs(cfg.Storage.BaseDir) {
				if abs, err := filepath.Abs(cfg.Storage.BaseDir); err == nil {
					cfg.Storage.BaseDir = abs
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runPrep(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "source table to read (overrides input.path)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "base directory for session output (overrides storage.base_dir)")
	cmd.Flags().IntVar(&nMinValid, "n-min-valid", 0, "keep sources with more than this many usable points")
	cmd.Flags().IntVar(&workers, "workers", 0, "transform worker count")
	cmd.Flags().BoolVar(&strict, "strict-domain", false, "fail on non-finite log fluxes instead of propagating them")
	return cmd
}

func runPrep(ctx context.Context, cfg *utils.PrepConfig) error {
	f, err := os.Open(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	pc, err := controller.NewPrepController(cfg)
	if err != nil {
		return err
	}

	reader := ingest.NewTableReader(f, cfg.Input.NMinValid, cfg.Input.ChannelBuffer)
	if err := pc.Process(ctx, reader); err != nil {
		return err
	}

	read, dropped := reader.Stats()
	utils.L().Info("read=%d  dropped=%d  written=%d", read, dropped, pc.RowsWritten())
	fmt.Fprintln(os.Stdout, pc.SessionDir())
	return nil
}
