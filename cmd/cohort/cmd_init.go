package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cardiolab/cohort/internal/projectconfig"
	"github.com/cardiolab/cohort/internal/scaffold"
	"github.com/cardiolab/cohort/internal/wizard"
)

const gitignoreContent = `# Pipeline outputs
data/labeled_data.json
data/training_data.csv*
data/test_data.csv*
data/validation_data.csv*

# Build
*.exe
coverage.txt
`

func newInitCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new cohort project",
		Long: `Initialize a cohort project directory.

Creates cohort.yaml, a starter raw measurement CSV, a README, and a
.gitignore. Existing files are never overwritten.

Use --interactive to run a guided wizard that collects the project
settings before scaffolding.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided project setup wizard")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	// Create the root directory if it doesn't exist
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	name := filepath.Base(absDir)

	spec := wizard.DefaultSpec(name)
	if interactive {
		spec, err = wizard.RunProjectWizard(cmd.InOrStdin(), cmd.OutOrStdout(), name)
		if err != nil {
			return err
		}
	}

	configContent, err := wizard.GenerateConfigYAML(spec)
	if err != nil {
		return fmt.Errorf("failed to generate cohort.yaml: %w", err)
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(dir, projectconfig.ConfigFileName), configContent},
		{filepath.Join(dir, spec.RawPath), scaffold.ExampleCSV()},
		{filepath.Join(dir, "README.md"), scaffold.ReadmeMD(spec.Name, spec.Description)},
		{filepath.Join(dir, ".gitignore"), gitignoreContent},
	}

	var created []string
	for _, f := range files {
		ok, err := writeIfAbsent(f.path, f.content)
		if err != nil {
			return err
		}
		if ok {
			created = append(created, f.path)
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, spec.DatasetsDir), 0o755); err != nil {
		return fmt.Errorf("failed to create datasets directory: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(created) == 0 {
		fmt.Fprintln(out, "Project already up to date.") //nolint:errcheck
		return nil
	}

	fmt.Fprintln(out, "Initialized cohort project:") //nolint:errcheck
	for _, path := range created {
		fmt.Fprintf(out, "  %s\n", path) //nolint:errcheck
	}
	return nil
}

// writeIfAbsent writes content to path unless the file already exists,
// creating parent directories as needed. Reports whether it wrote.
func writeIfAbsent(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
