// Package checks audits a labeled artifact for internal consistency:
// every derived value it stores must be reproducible from the stored
// raw measurements.
package checks

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/cardiolab/cohort/internal/risk"
	"github.com/cardiolab/cohort/internal/subject"
)

// Tolerance for comparing recomputed values against stored ones. Stored
// values are rounded before persisting, so a faithful recomputation
// matches far inside this bound.
const epsilon = 1e-9

// CheckResult holds the outcome of a single integrity check.
type CheckResult struct {
	// Name is a stable check identifier used in output.
	Name string
	// Passed indicates whether every subject satisfied the check.
	Passed bool
	// Summary is a human-readable one-line result.
	Summary string
	// Details lists the offending subjects, one line each.
	Details []string
}

// IntegrityChecker runs a single audit over the bucketed subjects.
type IntegrityChecker interface {
	Name() string
	Check(*subject.Buckets) (*CheckResult, error)
}

// DefaultCheckers returns the audit suite in execution order.
func DefaultCheckers() []IntegrityChecker {
	return []IntegrityChecker{
		&BMIChecker{},
		&CVDProbChecker{},
		&CategoryChecker{},
	}
}

// BMIChecker recomputes every stored BMI from weight and height.
type BMIChecker struct{}

var _ IntegrityChecker = (*BMIChecker)(nil)

func (*BMIChecker) Name() string { return "bmi-consistency" }

func (*BMIChecker) Check(b *subject.Buckets) (*CheckResult, error) {
	var details []string
	for _, c := range subject.Categories {
		for _, s := range b.Bucket(c) {
			if s.Height <= 0 {
				details = append(details, fmt.Sprintf("subject %s (%s): height %v is not positive", s.SubjectID, c, s.Height))
				continue
			}
			if derived := risk.BMI(s.Weight, s.Height); !approxEqual(derived, s.BMI) {
				details = append(details, fmt.Sprintf("subject %s (%s): bmi %v stored, %v derived", s.SubjectID, c, s.BMI, derived))
			}
		}
	}
	return result("bmi-consistency", "every stored bmi matches its measurements", details), nil
}

// CVDProbChecker recomputes cvd_prob from the stored bmi and age.
type CVDProbChecker struct{}

var _ IntegrityChecker = (*CVDProbChecker)(nil)

func (*CVDProbChecker) Name() string { return "cvd-prob-consistency" }

func (*CVDProbChecker) Check(b *subject.Buckets) (*CheckResult, error) {
	var details []string
	for _, c := range subject.Categories {
		for _, s := range b.Bucket(c) {
			if derived := risk.CVDProbability(s.BMI, s.Age); !approxEqual(derived, s.CVDProb) {
				details = append(details, fmt.Sprintf("subject %s (%s): cvd_prob %v stored, %v derived", s.SubjectID, c, s.CVDProb, derived))
			}
		}
	}
	return result("cvd-prob-consistency", "every stored cvd_prob matches the risk model", details), nil
}

// CategoryChecker verifies each subject sits in the bucket its BMI maps to.
type CategoryChecker struct{}

var _ IntegrityChecker = (*CategoryChecker)(nil)

func (*CategoryChecker) Name() string { return "category-placement" }

func (*CategoryChecker) Check(b *subject.Buckets) (*CheckResult, error) {
	var details []string
	for _, c := range subject.Categories {
		for _, s := range b.Bucket(c) {
			if want := risk.Categorize(s.BMI); want != c {
				details = append(details, fmt.Sprintf("subject %s: bmi %v belongs in %s, found in %s", s.SubjectID, s.BMI, want, c))
			}
		}
	}
	return result("category-placement", "every subject is in the bucket its bmi maps to", details), nil
}

// FromDocument converts a schema-validated artifact document into typed
// buckets. Numbers arrive as float64 from the JSON parser; weak typing
// lets integral ages land in the int field.
func FromDocument(doc any) (*subject.Buckets, error) {
	b := subject.NewBuckets()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           b,
	})
	if err != nil {
		return nil, fmt.Errorf("building artifact decoder: %w", err)
	}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding labeled artifact: %w", err)
	}
	return b, nil
}

func result(name, okSummary string, details []string) *CheckResult {
	if len(details) > 0 {
		return &CheckResult{
			Name:    name,
			Passed:  false,
			Summary: fmt.Sprintf("%d subject(s) failed %s", len(details), name),
			Details: details,
		}
	}
	return &CheckResult{Name: name, Passed: true, Summary: okSummary}
}

func approxEqual(a, b float64) bool {
	d := a - b
	return d < epsilon && d > -epsilon
}
