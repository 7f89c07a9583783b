package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardiolab/cohort/internal/normalize"
)

func newNormalizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize <age> <weight> <height>",
		Short: "Normalize a single measurement point",
		Long: `Normalize one age/weight/height measurement to the unit interval using
the same feature scales the split datasets use (age/100, weight/200,
height/250, clamped to [0, 1]) and print the result as one
comma-separated line.`,
		Args: cobra.ExactArgs(3),
		RunE: normalizeCommandE,
	}

	return cmd
}

func normalizeCommandE(cmd *cobra.Command, args []string) error {
	names := [3]string{"age", "weight", "height"}
	vals := [3]float64{}
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: must be numeric", names[i], arg)
		}
		vals[i] = v
	}

	features := normalize.Features(vals[0], vals[1], vals[2])

	parts := make([]string, len(features))
	for i, f := range features {
		parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, ",")) //nolint:errcheck
	return nil
}
