// Package labeler turns raw anthropometric records into labeled,
// bucketed subjects.
package labeler

import (
	"fmt"
	"log/slog"

	"github.com/cardiolab/cohort/internal/risk"
	"github.com/cardiolab/cohort/internal/subject"
)

// Label derives BMI, category and CVD probability for one record. A
// non-positive height cannot produce a meaningful BMI and is rejected.
func Label(r subject.Raw) (subject.Labeled, subject.Category, error) {
	if r.Height <= 0 {
		return subject.Labeled{}, "", fmt.Errorf("subject %s: height must be positive, got %v", r.SubjectID, r.Height)
	}

	bmi := risk.BMI(r.Weight, r.Height)
	return subject.Labeled{
		Raw:     r,
		BMI:     bmi,
		CVDProb: risk.CVDProbability(bmi, r.Age),
	}, risk.Categorize(bmi), nil
}

// Process labels every record and groups the results by category. The
// first bad record aborts the whole batch; no partial artifact is
// produced.
func Process(records []subject.Raw) (*subject.Buckets, error) {
	b := subject.NewBuckets()
	for _, r := range records {
		labeled, category, err := Label(r)
		if err != nil {
			return nil, err
		}
		if err := b.Add(category, labeled); err != nil {
			return nil, fmt.Errorf("subject %s: %w", r.SubjectID, err)
		}
	}

	slog.Debug("labeled subjects", "count", b.Total())
	return b, nil
}
