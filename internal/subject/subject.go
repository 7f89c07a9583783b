// Package subject defines the data types that flow through the cohort
// pipeline: raw anthropometric records, labeled subjects, the category
// buckets persisted as the labeled artifact, and the normalized samples
// written to the exported datasets.
package subject

import "fmt"

// Category buckets subjects by BMI.
type Category string

const (
	CategoryUnderweight Category = "underweight"
	CategoryNormal      Category = "normal"
	CategoryOverweight  Category = "overweight"
	CategoryObese       Category = "obese"
	CategoryMorbidObese Category = "morbid_obese"
)

// Categories lists every category in ascending BMI order. Buckets,
// reports and exports all iterate in this order.
var Categories = []Category{
	CategoryUnderweight,
	CategoryNormal,
	CategoryOverweight,
	CategoryObese,
	CategoryMorbidObese,
}

// Raw is one anthropometric record as read from the input CSV.
type Raw struct {
	SubjectID string  `csv:"id" json:"subject_id"`
	Age       int     `csv:"age" json:"age"`
	Weight    float64 `csv:"weight" json:"weight"` // kg
	Height    float64 `csv:"height" json:"height"` // cm
}

// Labeled is a raw record enriched with its derived measures.
type Labeled struct {
	Raw
	BMI     float64 `json:"bmi"`
	CVDProb float64 `json:"cvd_prob"`
}

// Buckets groups labeled subjects by BMI category. Use NewBuckets so
// every bucket serializes as an array even when empty; the labeled
// artifact always carries all five keys.
type Buckets struct {
	Underweight []Labeled `json:"underweight"`
	Normal      []Labeled `json:"normal"`
	Overweight  []Labeled `json:"overweight"`
	Obese       []Labeled `json:"obese"`
	MorbidObese []Labeled `json:"morbid_obese"`
}

func NewBuckets() *Buckets {
	return &Buckets{
		Underweight: []Labeled{},
		Normal:      []Labeled{},
		Overweight:  []Labeled{},
		Obese:       []Labeled{},
		MorbidObese: []Labeled{},
	}
}

// Add appends s to the bucket for c. An unknown category is reported
// rather than silently dropped.
func (b *Buckets) Add(c Category, s Labeled) error {
	p := b.bucket(c)
	if p == nil {
		return fmt.Errorf("unknown category %q", c)
	}
	*p = append(*p, s)
	return nil
}

// Bucket returns the subjects labeled with category c, or nil if c is
// not a known category.
func (b *Buckets) Bucket(c Category) []Labeled {
	if p := b.bucket(c); p != nil {
		return *p
	}
	return nil
}

// Flatten returns every subject in category order, underweight first.
func (b *Buckets) Flatten() []Labeled {
	out := make([]Labeled, 0, b.Total())
	for _, c := range Categories {
		out = append(out, b.Bucket(c)...)
	}
	return out
}

// Total returns the number of subjects across all buckets.
func (b *Buckets) Total() int {
	n := 0
	for _, c := range Categories {
		n += len(b.Bucket(c))
	}
	return n
}

func (b *Buckets) bucket(c Category) *[]Labeled {
	switch c {
	case CategoryUnderweight:
		return &b.Underweight
	case CategoryNormal:
		return &b.Normal
	case CategoryOverweight:
		return &b.Overweight
	case CategoryObese:
		return &b.Obese
	case CategoryMorbidObese:
		return &b.MorbidObese
	}
	return nil
}

// Sample is one training example: the normalized feature triple plus
// the CVD probability target, in the exact column order of the
// exported datasets.
type Sample struct {
	AgeNorm    float64 `csv:"age_norm"`
	WeightNorm float64 `csv:"weight_norm"`
	HeightNorm float64 `csv:"height_norm"`
	CVDProb    float64 `csv:"cvd_prob"`
}
