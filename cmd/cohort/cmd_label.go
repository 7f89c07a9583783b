package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cardiolab/cohort/internal/artifact"
	"github.com/cardiolab/cohort/internal/dataset"
	"github.com/cardiolab/cohort/internal/labeler"
	"github.com/cardiolab/cohort/internal/projectconfig"
	"github.com/cardiolab/cohort/internal/report"
	"github.com/cardiolab/cohort/internal/subject"
)

func newLabelCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "label [raw.csv]",
		Short: "Label raw measurements with BMI and CVD risk",
		Long: `Label raw anthropometric measurements with BMI, CVD probability, and a
BMI category, then write the bucketed result as a JSON artifact.

The input CSV must carry id, age, weight, and height columns. The path
comes from the argument, or from paths.raw in cohort.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return labelCommandE(cmd, args, outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Labeled artifact path (default: paths.labeled from cohort.yaml)")

	return cmd
}

func labelCommandE(cmd *cobra.Command, args []string, outputPath string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	rawPath := cfg.Paths.Raw
	if len(args) > 0 {
		rawPath = args[0]
	}
	if rawPath == "" {
		return fmt.Errorf("no raw CSV given: pass a path or set paths.raw in cohort.yaml")
	}

	labeledPath := outputPath
	if labeledPath == "" {
		labeledPath = cfg.Paths.Labeled
	}

	_, err = labelStage(cmd.OutOrStdout(), rawPath, labeledPath)
	return err
}

// labelStage loads the raw CSV, labels every subject, writes the
// bucketed artifact, and prints the category distribution. Shared with
// cohort run.
func labelStage(out io.Writer, rawPath, labeledPath string) (*subject.Buckets, error) {
	records, err := dataset.LoadSubjects(rawPath)
	if err != nil {
		return nil, err
	}

	buckets, err := labeler.Process(records)
	if err != nil {
		return nil, err
	}

	if err := artifact.WriteLabeled(labeledPath, buckets); err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Labeled %d subject(s) from %s\n", buckets.Total(), rawPath) //nolint:errcheck
	fmt.Fprintf(out, "Artifact written to %s\n\n", labeledPath)                   //nolint:errcheck
	report.Distribution(out, buckets)
	return buckets, nil
}
