// Package cli defines the cobra command tree for the cnf CLI.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scbrown/cnf/internal/config"
)

var (
	indexPath     string
	installPrefix string
	remoteURL     string
	jsonOutput    bool
	verbose       bool

	// cfg is the loaded configuration with flag overrides applied.
	cfg = &config.Config{}

	// logger is built in PersistentPreRunE; commands log through it.
	logger = zap.NewNop()
)

// configPath is the path to the config file, settable for testing.
var configPath = config.Path()

// rootCmd is the top-level cnf command.
var rootCmd = &cobra.Command{
	Use:   "cnf",
	Short: "Suggest installable packages for commands that are not found",
	Long: `cnf turns "command not found" into an install suggestion.

When the shell cannot find a command, cnf looks the name up in the package
manager's index and prints the install command. The same suggestion is offered
as the next command line (Ctrl-X Ctrl-S in the shell integration) until any
command line is accepted.

A long-running "cnf serve" daemon holds the pending suggestion; the shell hooks
installed by "cnf init" talk to it. Configuration lives in ~/.cnf/config.toml.`,
	Example: `  # Run the daemon and hook it into zsh
  cnf serve &
  eval "$(cnf init zsh)"

  # Look a command up directly
  cnf resolve kubectl jq`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadFrom(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		applyFlags(cmd)

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(cfg.Level())
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&indexPath, "index", "", "path to the package index (default ~/.cnf/index.db)")
	rootCmd.PersistentFlags().StringVar(&installPrefix, "prefix", "", "install command prefix (default \"winget install\")")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "daemon URL (default http://localhost:7274)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("index") {
		cfg.IndexPath = indexPath
	}
	if flags.Changed("prefix") {
		cfg.InstallPrefix = installPrefix
	}
	if flags.Changed("remote") {
		cfg.RemoteURL = remoteURL
	}
	if cfg.DefaultFormat == "json" && !flags.Changed("json") {
		jsonOutput = true
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
