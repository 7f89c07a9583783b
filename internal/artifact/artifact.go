// Package artifact reads and writes the labeled subject artifact, the
// JSON file that connects the labeling stage to everything downstream.
package artifact

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cardiolab/cohort/internal/subject"
)

// WriteLabeled persists buckets as indented JSON, creating parent
// directories as needed. Buckets keep their struct order in the output,
// so relabeling the same input produces a byte-identical file.
func WriteLabeled(path string, b *subject.Buckets) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling labeled subjects: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	slog.Debug("labeled artifact written", "path", path, "subjects", b.Total())
	return nil
}

// ReadLabeled loads a labeled artifact. A missing file keeps
// fs.ErrNotExist in the returned error chain so callers can treat that
// case as recoverable instead of crashing.
func ReadLabeled(path string) (*subject.Buckets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	b := subject.NewBuckets()
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return b, nil
}
