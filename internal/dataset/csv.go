package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/gzip"

	"github.com/cardiolab/cohort/internal/subject"
)

// Columns the input CSV must carry. Extra columns are ignored so survey
// exports with trailing measurement columns load as-is.
var requiredColumns = []string{"id", "age", "weight", "height"}

// LoadSubjects reads raw subject records from a CSV file. Files ending
// in .gz are decompressed transparently. The first row must be a header
// naming at least the required columns, and every data row must coerce
// cleanly or the whole load fails.
func LoadSubjects(path string) ([]subject.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("csv: gunzip %s: %w", path, err)
		}
		defer zr.Close() //nolint:errcheck
		r = zr
	}

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	cols, err := columnIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", path, err)
	}

	subjects := make([]subject.Raw, 0, len(records)-1)
	for i, record := range records[1:] {
		s, err := parseSubject(cols, record)
		if err != nil {
			return nil, fmt.Errorf("csv: %s row %d: %w", path, i+2, err)
		}
		subjects = append(subjects, s)
	}

	slog.Debug("loaded raw subjects", "path", path, "count", len(subjects))
	return subjects, nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, want := range requiredColumns {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("missing required column %q (header: %s)", want, strings.Join(header, ","))
		}
	}
	return cols, nil
}

func parseSubject(cols map[string]int, record []string) (subject.Raw, error) {
	get := func(name string) string {
		if i := cols[name]; i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	age, err := strconv.Atoi(get("age"))
	if err != nil {
		return subject.Raw{}, fmt.Errorf("age %q is not an integer", get("age"))
	}
	weight, err := strconv.ParseFloat(get("weight"), 64)
	if err != nil {
		return subject.Raw{}, fmt.Errorf("weight %q is not a number", get("weight"))
	}
	height, err := strconv.ParseFloat(get("height"), 64)
	if err != nil {
		return subject.Raw{}, fmt.Errorf("height %q is not a number", get("height"))
	}

	return subject.Raw{
		SubjectID: get("id"),
		Age:       age,
		Weight:    weight,
		Height:    height,
	}, nil
}

// WriteSamples writes normalized samples to a CSV file with a header
// row. A path ending in .gz is gzip-compressed on the way out.
func WriteSamples(path string, samples []subject.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}

	if err := gocsv.Marshal(&samples, w); err != nil {
		return fmt.Errorf("csv: write %s: %w", path, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("csv: write %s: %w", path, err)
		}
	}
	return f.Close()
}
