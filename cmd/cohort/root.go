package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cohort",
		Short: "Cohort - CLI tool for cardiovascular risk labeling",
		Long: `Cohort is a command-line tool for preparing cardiovascular study data.

It labels raw anthropometric measurements with BMI and CVD risk, buckets
subjects by BMI category, and splits the labeled cohort into normalized
training, test, and validation datasets.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newLabelCommand())
	cmd.AddCommand(newSplitCommand())
	cmd.AddCommand(newNormalizeCommand())
	cmd.AddCommand(newStatsCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
