package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var verbose bool
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Track local projects and report what changed",
		Long: "Scan a projects directory for software projects, record their type, version and git state, " +
			"describe new or changed projects with an analysis provider, and report what changed since the last scan.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return track(cmd.Context(), configPath, stdout, newLogger(stderr, verbose))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigFile, "path to the config file")

	rootCmd.SetArgs(args[1:])
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// track runs one full scan. The state file is only replaced after the scan
// completed, so any error leaves the previous state in place
func track(ctx context.Context, configPath string, stdout io.Writer, logger *slog.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	prev, err := loadState(cfg.StateFile)
	if err != nil {
		return err
	}
	logger.Debug("loaded state", "path", cfg.StateFile, "projects", len(prev))

	analyzer, err := newAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}
	if analyzer == nil && cfg.Provider != providerNone {
		logger.Info("analysis disabled, no API key configured", "provider", cfg.Provider)
	}

	scanner := newScanner(cfg, analyzer, logger)
	state, changes, err := scanner.Scan(ctx, prev)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := saveState(cfg.StateFile, state); err != nil {
		return err
	}

	now := scanner.now()
	if cfg.ChangesFile != "" {
		if err := appendChangeLog(cfg.ChangesFile, now, changes); err != nil {
			logger.Warn("change log not written", "err", err)
		}
	}
	reportWritten := false
	if cfg.Report && cfg.ReportFile != "" {
		if err := writeReport(cfg.ReportFile, state, changes, now); err != nil {
			logger.Warn("report not written", "err", err)
		} else {
			reportWritten = true
			if cfg.OpenReport {
				if err := openReport(cfg.ReportFile); err != nil {
					logger.Warn("report not opened", "err", err)
				}
			}
		}
	}

	printSummary(stdout, state, changes)
	if reportWritten {
		fmt.Fprintf(stdout, "Report written to %s\n", cfg.ReportFile)
	}
	return nil
}

// printSummary writes the human readable result of a scan
func printSummary(w io.Writer, state State, changes []Change) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "%s %d project(s) scanned\n", green("✓"), len(state))
	if len(changes) == 0 {
		fmt.Fprintln(w, "No changes")
		return
	}

	fmt.Fprintln(w, "Changes:")
	for _, c := range changes {
		fmt.Fprintf(w, "  %s %s\n", yellow("•"), c)
	}
}
