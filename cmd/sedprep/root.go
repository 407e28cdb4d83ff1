package main

import (
	"os"

	"github.com/spf13/cobra"

	"sed-source/utils"
)

var (
	cfgFile string
	logFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "sedprep",
	Short: "Validate photometric source tables and derive log fluxes",
	Long: `sedprep reads fixed-width tables of photometric sources (name, position,
validity codes, fluxes and errors), validates every record, filters sources
with too few usable points and writes the log-space fluxes, errors and
weights a SED fitter consumes.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to prep.yaml (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "optional log file path (stderr is always included)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newPrepCmd(), newInspectCmd(), newExportCmd())
}

// loadConfig reads --config when given and sets up the logger from it.
func loadConfig() (*utils.PrepConfig, error) {
	cfg := utils.DefaultPrepConfig()
	if cfgFile != "" {
		var err error
		if cfg, err = utils.LoadPrepConfig(cfgFile); err != nil {
			return nil, err
		}
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	level, err := utils.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = utils.DEBUG
	}
	utils.InitLogger(level, cfg.Log.File).SetLevel(level)
	return cfg, nil
}
