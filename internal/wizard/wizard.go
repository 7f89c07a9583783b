package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/cardiolab/cohort/internal/projectconfig"
	"github.com/cardiolab/cohort/internal/scaffold"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// DefaultRawPath is suggested for the raw measurement file when the user
// does not supply one. The config itself carries no default for it.
const DefaultRawPath = "data/subjects.csv"

// ProjectSpec holds all fields collected during the interactive wizard.
type ProjectSpec struct {
	Name        string
	Description string
	RawPath     string
	LabeledPath string
	DatasetsDir string
	Seed        int64
	Compress    bool
}

const configTemplate = `# cohort project configuration
name: {{ .Name }}
{{- if .Description }}
description: {{ .Description }}
{{- end }}

paths:
  # Raw anthropometric measurements (id,age,weight,height).
  raw: {{ .RawPath }}
  # Labeled artifact written by cohort label.
  labeled: {{ .LabeledPath }}
  # Directory receiving the training/test/validation files.
  datasets: {{ .DatasetsDir }}

split:
  # Any non-negative seed makes the shuffle reproducible.
  seed: {{ .Seed }}

export:
  # Write the dataset files gzip-compressed.
  compress: {{ .Compress }}
`

// DefaultSpec returns the ProjectSpec cohort init uses when run non-interactively.
func DefaultSpec(name string) *ProjectSpec {
	return &ProjectSpec{
		Name:        name,
		RawPath:     DefaultRawPath,
		LabeledPath: projectconfig.DefaultLabeledPath,
		DatasetsDir: projectconfig.DefaultDatasetsDir,
		Seed:        projectconfig.DefaultSeed,
	}
}

// RunProjectWizard runs an interactive huh form to collect project settings.
// If initialName is non-empty, it pre-populates the name field.
func RunProjectWizard(in io.Reader, out io.Writer, initialName string) (*ProjectSpec, error) {
	var (
		name        = initialName
		description string
		rawPath     string
		datasetsDir string
		compress    bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("A kebab-case name for your project").
				Placeholder("my-cohort").
				Value(&name).
				Validate(func(s string) error {
					return scaffold.ValidateName(strings.TrimSpace(s))
				}),
			huh.NewInput().
				Title("Description").
				Description("One line about the cohort this project prepares (optional)").
				Placeholder("Quarterly CVD screening cohort").
				Value(&description),
			huh.NewInput().
				Title("Raw measurements CSV").
				Description("Path to the id,age,weight,height input file").
				Placeholder(DefaultRawPath).
				Value(&rawPath),
			huh.NewInput().
				Title("Datasets directory").
				Description("Where the training/test/validation files are written").
				Placeholder(projectconfig.DefaultDatasetsDir).
				Value(&datasetsDir),
			huh.NewConfirm().
				Title("Compress exported datasets?").
				Description("Write the dataset files gzip-compressed").
				Value(&compress),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	spec := DefaultSpec(strings.TrimSpace(name))
	spec.Description = strings.TrimSpace(description)
	if p := strings.TrimSpace(rawPath); p != "" {
		spec.RawPath = p
	}
	if d := strings.TrimSpace(datasetsDir); d != "" {
		spec.DatasetsDir = d
	}
	spec.Compress = compress
	return spec, nil
}

// GenerateConfigYAML renders a cohort.yaml from the given spec.
func GenerateConfigYAML(spec *ProjectSpec) (string, error) {
	tmpl, err := template.New("cohortyaml").Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
