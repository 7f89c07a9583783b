// Package scaffold provides shared content generators used by cohort init:
// name validation, example input data, and the project README.
package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateName rejects names with path-traversal characters or empty
// names. The raw input is checked, not the cleaned form, so separators
// that filepath.Clean would collapse away still fail.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") ||
		strings.Contains(name, "..") || filepath.Clean(name) == "." {
		return fmt.Errorf("project name %q contains invalid path characters", name)
	}
	return nil
}

// TitleCase converts a kebab-case name to Title Case.
func TitleCase(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ExampleCSV returns a starter raw measurement file. The six subjects were
// picked so every BMI category appears at least once.
func ExampleCSV() string {
	return `id,age,weight,height
1,45,80.0,175.0
2,29,62.5,168.2
3,61,95.3,172.8
4,17,45.0,160.0
5,52,110.2,165.5
6,33,70.0,175.0
`
}

// ReadmeMD returns a starter README for the given project.
func ReadmeMD(name, description string) string {
	title := TitleCase(name)
	if description == "" {
		description = "A cardiovascular risk labeling and dataset preparation project."
	}
	return fmt.Sprintf(`# %s

%s

## Quickstart

Label the raw measurements and split them into datasets:

    cohort run

Or run the stages separately:

    cohort label
    cohort split --seed 42

Inspect the labeled cohort:

    cohort stats
    cohort check

Paths and split behavior are configured in cohort.yaml.
`, title, description)
}
