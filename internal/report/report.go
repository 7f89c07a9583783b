// Package report renders views of a labeled cohort: the category
// distribution table and aggregate statistics over the derived
// measures, in both human-readable and JSON form.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/montanaflynn/stats"

	"github.com/cardiolab/cohort/internal/subject"
)

// Stats is the machine-readable summary of a labeled cohort.
type Stats struct {
	Total      int                      `json:"total"`
	Categories map[subject.Category]int `json:"categories"`
	BMI        Aggregate                `json:"bmi"`
	CVDProb    Aggregate                `json:"cvd_prob"`
}

// Aggregate summarizes one measure across the cohort.
type Aggregate struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Collect computes Stats for b. With an empty cohort the aggregates
// stay zero; only counts are reported.
func Collect(b *subject.Buckets) (Stats, error) {
	s := Stats{
		Total:      b.Total(),
		Categories: make(map[subject.Category]int, len(subject.Categories)),
	}
	for _, c := range subject.Categories {
		s.Categories[c] = len(b.Bucket(c))
	}
	if s.Total == 0 {
		return s, nil
	}

	subjects := b.Flatten()
	bmis := make([]float64, len(subjects))
	probs := make([]float64, len(subjects))
	for i, subj := range subjects {
		bmis[i] = subj.BMI
		probs[i] = subj.CVDProb
	}

	var err error
	if s.BMI, err = aggregate(bmis); err != nil {
		return s, fmt.Errorf("aggregating bmi: %w", err)
	}
	if s.CVDProb, err = aggregate(probs); err != nil {
		return s, fmt.Errorf("aggregating cvd_prob: %w", err)
	}
	return s, nil
}

func aggregate(data []float64) (Aggregate, error) {
	var a Aggregate
	var err error
	if a.Mean, err = stats.Mean(data); err != nil {
		return a, err
	}
	if a.Median, err = stats.Median(data); err != nil {
		return a, err
	}
	if a.P90, err = stats.Percentile(data, 90); err != nil {
		return a, err
	}
	if a.Min, err = stats.Min(data); err != nil {
		return a, err
	}
	a.Max, err = stats.Max(data)
	return a, err
}

const (
	colCategory = 14
	colCount    = 7
	colShare    = 6
	tableWidth  = colCategory + colCount + colShare + 4 // 2 gaps × 2 spaces
)

// Distribution writes the per-category count table. An empty cohort
// still renders, with shares dashed out.
func Distribution(w io.Writer, b *subject.Buckets) {
	total := b.Total()

	fmt.Fprintf(w, "%s\n", strings.Repeat("═", tableWidth)) //nolint:errcheck
	fmt.Fprintf(w, " CATEGORY DISTRIBUTION\n")              //nolint:errcheck
	fmt.Fprintf(w, "%s\n", strings.Repeat("═", tableWidth)) //nolint:errcheck

	for _, c := range subject.Categories {
		count := len(b.Bucket(c))
		share := "—"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
		}
		fmt.Fprintf(w, "%s  %*d  %*s\n", //nolint:errcheck
			padRight(string(c), colCategory), colCount, count, colShare, share)
	}

	fmt.Fprintf(w, "%s\n", strings.Repeat("─", tableWidth)) //nolint:errcheck
	fmt.Fprintf(w, "%s  %*d\n", //nolint:errcheck
		padRight("total", colCategory), colCount, total)
}

// Summary writes the aggregate block for s. Call after Collect.
func Summary(w io.Writer, s Stats) {
	if s.Total == 0 {
		fmt.Fprintf(w, "\nNo subjects labeled; nothing to summarize.\n") //nolint:errcheck
		return
	}

	fmt.Fprintf(w, "\n MEASUREMENT SUMMARY\n")               //nolint:errcheck
	fmt.Fprintf(w, "%s\n", strings.Repeat("─", tableWidth)) //nolint:errcheck
	fmt.Fprintf(w, " %s  mean %.2f  median %.2f  p90 %.2f  range [%.2f, %.2f]\n", //nolint:errcheck
		padRight("bmi", 8), s.BMI.Mean, s.BMI.Median, s.BMI.P90, s.BMI.Min, s.BMI.Max)
	fmt.Fprintf(w, " %s  mean %.4f  median %.4f  p90 %.4f  range [%.4f, %.4f]\n", //nolint:errcheck
		padRight("cvd_prob", 8), s.CVDProb.Mean, s.CVDProb.Median, s.CVDProb.P90, s.CVDProb.Min, s.CVDProb.Max)
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
