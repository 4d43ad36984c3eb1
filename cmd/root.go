/*
Copyright © 2025 3 Leaps <info@3leaps.com>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fulmenhq/techscan/pkg/buildinfo"
	"github.com/fulmenhq/techscan/pkg/config"
	"github.com/fulmenhq/techscan/pkg/exitcode"
	"github.com/fulmenhq/techscan/pkg/logger"
	"github.com/fulmenhq/techscan/pkg/techscan"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "techscan <dir>",
		Short: "Report which programming languages a directory tree is written in",
		Long: `Techscan walks a directory, honouring .gitignore rules, and reports how many
files belong to each recognised programming language.

Examples:
   techscan .                          # JSON report for the current directory
   techscan ./src -r table             # Summary and per-language tables
   techscan . -e '*.rs' -e 'vendor/'   # Skip Rust files and the vendor tree
   techscan . -c techscan.yaml         # Read defaults from a config file
   techscan version --extended         # Show build information`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeLogger(cmd)
		},
		RunE: runScan,
	}

	// Global flags
	cmd.PersistentFlags().String("log-level", "warn", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored log output")

	// Scan flags
	cmd.Flags().StringSliceP("exclude", "e", nil, "Exclude pattern, gitignore syntax (repeatable, comma-separated)")
	cmd.Flags().StringP("reporter", "r", "json", "Report format (table|json|yaml|toml)")
	cmd.Flags().StringP("config", "c", "", "Config file (.json, .yaml, .yml or .toml)")
	cmd.Flags().IntP("workers", "w", 1, "Concurrent traversal workers")
	cmd.Flags().Bool("no-ignore", false, "Do not honour .gitignore and .git/info/exclude")

	// Wire Cobra's built-in --version using the binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("techscan {{.Version}}\n")

	cmd.AddCommand(newVersionCommand())

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command and exits with a code matching the failure.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(reportFailure(os.Stderr, err))
	}
}

// reportFailure prints the one-line fatal message and returns the exit code
// for err.
func reportFailure(w io.Writer, err error) int {
	code := exitcode.FromError(err)
	logger.Debug("Command failed",
		logger.Int("exit_code", code),
		logger.String("category", exitcode.String(code)))
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return code
}

func runScan(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to read --config: %w", err)
	}

	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger.Debug("Resolved configuration",
		logger.String("reporter", cfg.Reporter),
		logger.Int("workers", cfg.Workers),
		logger.Int("excludes", len(cfg.Exclude)),
		logger.Bool("no_ignore", cfg.NoIgnore),
	)

	_, err = techscan.Run(cmd.Context(), techscan.Params{
		Root:     args[0],
		Excludes: cfg.Exclude,
		Format:   cfg.Reporter,
		Workers:  cfg.Workers,
		NoIgnore: cfg.NoIgnore,
	}, cmd.OutOrStdout())
	return err
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) error {
	flags := cmd.Flags()
	logLevelStr, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to read --log-level: %w", err)
	}
	jsonLogs, err := flags.GetBool("log-json")
	if err != nil {
		return fmt.Errorf("failed to read --log-json: %w", err)
	}
	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return fmt.Errorf("failed to read --no-color: %w", err)
	}

	level, err := logger.ParseLevel(logLevelStr)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrConfig, err)
	}

	return logger.Initialize(logger.Config{
		Level:     level,
		UseColor:  !noColor && isatty.IsTerminal(os.Stderr.Fd()),
		JSON:      jsonLogs,
		Component: "techscan",
		Output:    cmd.ErrOrStderr(),
	})
}
