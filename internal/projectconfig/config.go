// Package projectconfig provides the ProjectConfig struct and loader for
// cohort.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file Load searches for, starting at the working
// directory and walking upward.
const ConfigFileName = "cohort.yaml"

// Default values for project configuration. These are the single source of
// truth: New() references them and no other code should duplicate them.
// There is no default raw CSV path; the input file must come from the
// config or the command line.
const (
	DefaultLabeledPath = "data/labeled_data.json"
	DefaultDatasetsDir = "data"

	// DefaultSeed keeps the split shuffle non-deterministic. Any
	// non-negative seed makes it reproducible.
	DefaultSeed = -1
)

// PathsConfig holds locations of the pipeline artifacts.
type PathsConfig struct {
	Raw      string `yaml:"raw,omitempty"`
	Labeled  string `yaml:"labeled,omitempty"`
	Datasets string `yaml:"datasets,omitempty"`
}

// SplitConfig holds dataset split parameters. Seed is a pointer so an
// explicit 0 in the file is distinguishable from an absent key.
type SplitConfig struct {
	Seed *int64 `yaml:"seed,omitempty"`
}

// ExportConfig holds dataset export settings.
type ExportConfig struct {
	Compress *bool `yaml:"compress,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from cohort.yaml.
type ProjectConfig struct {
	Name        string       `yaml:"name,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Paths       PathsConfig  `yaml:"paths,omitempty"`
	Split       SplitConfig  `yaml:"split,omitempty"`
	Export      ExportConfig `yaml:"export,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Raw:      "",
			Labeled:  DefaultLabeledPath,
			Datasets: DefaultDatasetsDir,
		},
		Split: SplitConfig{
			Seed: int64Ptr(DefaultSeed),
		},
		Export: ExportConfig{
			Compress: boolPtr(false),
		},
	}
}

// Load finds cohort.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found, defaults apply
		}
		return nil, fmt.Errorf("loading cohort.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing cohort.yaml: %w", err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for cohort.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Description != "" {
		dst.Description = src.Description
	}

	// Paths
	if src.Paths.Raw != "" {
		dst.Paths.Raw = src.Paths.Raw
	}
	if src.Paths.Labeled != "" {
		dst.Paths.Labeled = src.Paths.Labeled
	}
	if src.Paths.Datasets != "" {
		dst.Paths.Datasets = src.Paths.Datasets
	}

	// Split
	if src.Split.Seed != nil {
		dst.Split.Seed = src.Split.Seed
	}

	// Export
	if src.Export.Compress != nil {
		dst.Export.Compress = src.Export.Compress
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func int64Ptr(v int64) *int64 {
	return &v
}
