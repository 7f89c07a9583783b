// Package normalize scales raw anthropometric values into the feature
// space consumed by downstream training.
package normalize

import (
	"math"

	"github.com/cardiolab/cohort/internal/policy"
)

// Features scales age, weight (kg) and height (cm) by their policy
// ceilings and clamps each result to [0, 1]. Out-of-range inputs
// saturate instead of erroring, so one outlier cannot abort an export.
// The returned order is age, weight, height.
func Features(age, weightKg, heightCm float64) [3]float64 {
	return [3]float64{
		clamp01(age / policy.AgeCeiling),
		clamp01(weightKg / policy.WeightCeiling),
		clamp01(heightCm / policy.HeightCeiling),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}
