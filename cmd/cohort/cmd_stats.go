package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/cardiolab/cohort/internal/artifact"
	"github.com/cardiolab/cohort/internal/projectconfig"
	"github.com/cardiolab/cohort/internal/report"
)

func newStatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats [labeled.json]",
		Short: "Summarize the labeled cohort",
		Long: `Summarize the labeled cohort: category distribution plus mean, median,
p90, and range for BMI and CVD probability.

The artifact path comes from the argument, or from paths.labeled in
cohort.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return statsCommandE(cmd, args, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the summary as JSON")

	return cmd
}

func statsCommandE(cmd *cobra.Command, args []string, asJSON bool) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	labeledPath := cfg.Paths.Labeled
	if len(args) > 0 {
		labeledPath = args[0]
	}

	buckets, err := artifact.ReadLabeled(labeledPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("labeled artifact %s not found: run \"cohort label\" first", labeledPath)
		}
		return err
	}

	out := cmd.OutOrStdout()

	if asJSON {
		stats, err := report.Collect(buckets)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data)) //nolint:errcheck
		return nil
	}

	report.Distribution(out, buckets)
	fmt.Fprintln(out) //nolint:errcheck

	stats, err := report.Collect(buckets)
	if err != nil {
		return err
	}
	report.Summary(out, stats)
	return nil
}
