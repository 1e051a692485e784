// Package commands implements the CLI commands for ucm.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ucm/internal/config"
	"github.com/thoreinstein/ucm/internal/logging"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// confDirFlag holds the value of the --confdir flag.
var confDirFlag string

// saveDirFlag holds the value of the --savedir flag.
var saveDirFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// cfg is the loaded tool configuration.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&confDirFlag, "confdir", "",
		"directory of committed config files (default: /etc/config or XDG data home)")
	rootCmd.PersistentFlags().StringVar(&saveDirFlag, "savedir", "",
		"directory of staged changes (default: XDG state home)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("ucm version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "ucm",
	Short: "Manage hierarchical configuration packages",
	Long: `ucm maintains a tree of configuration packages, each holding typed
sections of name/value options, stored one file per package in a
config directory.

Mutating commands (set, add, delete, import) stage their result in the
savedir; commit promotes staged files into the confdir atomically and
revert discards them. Nothing touches the committed files until you
commit.`,
	Example: `  # Read one value
  ucm get network.lan.ifname

  # Stage a change, inspect it, then commit
  ucm set network.lan.ifname=eth1
  ucm changes network
  ucm commit network`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return resolveDirs(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return fmt.Errorf("cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		level = logging.LevelFromVerbosity(verbosity)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		handler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// resolveDirs fills in the effective confdir/savedir from flags and
// the tool configuration.
func resolveDirs(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if configLoadErr != nil {
		return configLoadErr
	}
	if confDirFlag == "" {
		confDirFlag = cfg.ConfDir
	}
	if saveDirFlag == "" {
		saveDirFlag = cfg.SaveDir
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
