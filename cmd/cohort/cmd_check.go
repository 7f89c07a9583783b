package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardiolab/cohort/internal/checks"
	"github.com/cardiolab/cohort/internal/projectconfig"
	"github.com/cardiolab/cohort/internal/validation"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [labeled.json]",
		Short: "Validate the labeled artifact and audit its integrity",
		Long: `Validate the labeled artifact against its JSON schema, then recompute
every derived value (BMI, CVD probability, category placement) and
report subjects that do not match.

Exits 1 when validation or an integrity check fails, 2 on
configuration and I/O errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: checkCommandE,
	}

	return cmd
}

func checkCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	labeledPath := cfg.Paths.Labeled
	if len(args) > 0 {
		labeledPath = args[0]
	}

	out := cmd.OutOrStdout()

	doc, schemaErrs, err := validation.ParseLabeled(labeledPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("labeled artifact %s not found: run \"cohort label\" first", labeledPath)
		}
		return err
	}

	if len(schemaErrs) > 0 {
		fmt.Fprintf(out, "Schema validation failed for %s:\n", labeledPath) //nolint:errcheck
		for _, e := range schemaErrs {
			fmt.Fprintf(out, "  - %s\n", e) //nolint:errcheck
		}
		return &CheckFailureError{
			Message: fmt.Sprintf("%d schema violation(s) in %s", len(schemaErrs), labeledPath),
		}
	}

	buckets, err := checks.FromDocument(doc)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, strings.Repeat("═", 56)) //nolint:errcheck
	fmt.Fprintln(out, " INTEGRITY CHECKS")     //nolint:errcheck
	fmt.Fprintln(out, strings.Repeat("═", 56)) //nolint:errcheck
	fmt.Fprintln(out)                          //nolint:errcheck

	checkers := checks.DefaultCheckers()
	failed := 0
	for _, checker := range checkers {
		result, err := checker.Check(buckets)
		if err != nil {
			return err
		}

		icon := "✓"
		if !result.Passed {
			icon = "✗"
			failed++
		}
		fmt.Fprintf(out, " %s %-22s %s\n", icon, result.Name, result.Summary) //nolint:errcheck
		for _, detail := range result.Details {
			fmt.Fprintf(out, "      %s\n", detail) //nolint:errcheck
		}
	}
	fmt.Fprintln(out) //nolint:errcheck

	if failed > 0 {
		return &CheckFailureError{
			Message: fmt.Sprintf("%d of %d integrity check(s) failed", failed, len(checkers)),
		}
	}

	fmt.Fprintf(out, "All integrity checks passed (%d subject(s)).\n", buckets.Total()) //nolint:errcheck
	return nil
}
