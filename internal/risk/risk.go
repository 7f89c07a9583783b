// Package risk derives the measures attached to each subject: body mass
// index, the BMI category and the CVD risk probability.
package risk

import (
	"math"

	"github.com/cardiolab/cohort/internal/policy"
	"github.com/cardiolab/cohort/internal/subject"
)

// BMI computes body mass index from weight in kilograms and height in
// centimeters, rounded to two decimals. Height is not validated here;
// callers reject non-positive heights before deriving anything.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return round(weightKg/(m*m), policy.BMIDecimals)
}

// CVDProbability combines a quadratic BMI term with a logistic age term,
// rounded to four decimals and capped at policy.CVDProbMax. There is no
// floor on purpose: the low end reports whatever the model produces.
// Pass the already-rounded BMI so stored values can be reproduced
// exactly from the artifact.
func CVDProbability(bmi float64, age int) float64 {
	bmiRisk := policy.BMIRiskQuad*bmi*bmi + policy.BMIRiskLinear*bmi + policy.BMIRiskConstant
	ageRisk := policy.AgeRiskScale / (1 + math.Exp(-policy.AgeRiskSlope*(float64(age)-policy.AgeRiskMidpoint)))
	return math.Min(round(bmiRisk*ageRisk, policy.CVDProbDecimals), policy.CVDProbMax)
}

// Categorize maps a BMI to its category. A BMI exactly on a cutoff
// belongs to the higher category.
func Categorize(bmi float64) subject.Category {
	switch {
	case bmi < policy.BMIUnderweightMax:
		return subject.CategoryUnderweight
	case bmi < policy.BMINormalMax:
		return subject.CategoryNormal
	case bmi < policy.BMIOverweightMax:
		return subject.CategoryOverweight
	case bmi < policy.BMIObeseMax:
		return subject.CategoryObese
	default:
		return subject.CategoryMorbidObese
	}
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
