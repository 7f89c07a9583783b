package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/cardiolab/cohort/internal/projectconfig"
	"github.com/cardiolab/cohort/internal/splitter"
)

func newSplitCommand() *cobra.Command {
	var (
		seed     int64
		outDir   string
		compress bool
	)

	cmd := &cobra.Command{
		Use:   "split [labeled.json]",
		Short: "Split the labeled cohort into training, test, and validation sets",
		Long: `Split the labeled cohort into normalized datasets.

Every subject is reduced to normalized age, weight, and height features
plus its CVD probability, shuffled, and partitioned 70/20/10 into
training, test, and validation CSV files.

The artifact path comes from the argument, or from paths.labeled in
cohort.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}

			labeledPath := cfg.Paths.Labeled
			if len(args) > 0 {
				labeledPath = args[0]
			}

			dir := outDir
			if dir == "" {
				dir = cfg.Paths.Datasets
			}

			// Flags beat the config only when set explicitly.
			if !cmd.Flags().Changed("seed") {
				seed = *cfg.Split.Seed
			}
			if !cmd.Flags().Changed("compress") {
				compress = *cfg.Export.Compress
			}

			_, err = splitStage(cmd.OutOrStdout(), labeledPath, dir, seed, compress)
			return err
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", projectconfig.DefaultSeed, "Shuffle seed; negative values give a different split each run")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for the dataset files (default: paths.datasets from cohort.yaml)")
	cmd.Flags().BoolVar(&compress, "compress", false, "gzip-compress the dataset files")

	return cmd
}

// splitStage loads the labeled artifact, splits it, and exports the
// dataset files. Shared with cohort run.
func splitStage(out io.Writer, labeledPath, dir string, seed int64, compress bool) (*splitter.Splitter, error) {
	sp := splitter.New(splitter.WithSeed(seed))

	if err := sp.Load(labeledPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("labeled artifact %s not found: run \"cohort label\" first", labeledPath)
		}
		return nil, err
	}

	sp.Split()

	if err := sp.Export(dir, compress); err != nil {
		return nil, err
	}

	total := len(sp.Training) + len(sp.Test) + len(sp.Validation)
	fmt.Fprintf(out, "Split %d subject(s): %d training / %d test / %d validation\n",
		total, len(sp.Training), len(sp.Test), len(sp.Validation)) //nolint:errcheck
	fmt.Fprintf(out, "Datasets written to %s\n", dir) //nolint:errcheck
	return sp, nil
}
