package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardiolab/cohort/internal/projectconfig"
)

func newRunCommand() *cobra.Command {
	var (
		labeledPath string
		seed        int64
		outDir      string
		compress    bool
	)

	cmd := &cobra.Command{
		Use:   "run [raw.csv]",
		Short: "Run the full pipeline: label, then split",
		Long: `Run both pipeline stages in order.

First labels the raw measurements and writes the bucketed artifact, then
shuffles the cohort and splits it into training, test, and validation
datasets. Equivalent to "cohort label" followed by "cohort split".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			artifactPath := labeledPath
			if artifactPath == "" {
				artifactPath = cfg.Paths.Labeled
			}

			dir := outDir
			if dir == "" {
				dir = cfg.Paths.Datasets
			}

			if !cmd.Flags().Changed("seed") {
				seed = *cfg.Split.Seed
			}
			if !cmd.Flags().Changed("compress") {
				compress = *cfg.Export.Compress
			}

			out := cmd.OutOrStdout()
			if _, err := labelStage(out, rawPath, artifactPath); err != nil {
				return err
			}
			fmt.Fprintln(out) //nolint:errcheck
			_, err = splitStage(out, artifactPath, dir, seed, compress)
			return err
		},
	}

	cmd.Flags().StringVarP(&labeledPath, "output", "o", "", "Labeled artifact path (default: paths.labeled from cohort.yaml)")
	cmd.Flags().Int64Var(&seed, "seed", projectconfig.DefaultSeed, "Shuffle seed; negative values give a different split each run")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for the dataset files (default: paths.datasets from cohort.yaml)")
	cmd.Flags().BoolVar(&compress, "compress", false, "gzip-compress the dataset files")

	return cmd
}
