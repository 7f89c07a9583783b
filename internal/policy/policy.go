// Package policy holds the numeric constants that define the labeling and
// dataset preparation behavior: the CVD risk model coefficients, the BMI
// category cutoffs, the feature normalization ceilings and the split
// fractions. Every package that needs one of these values reads it from
// here so the pipeline cannot drift out of sync with itself.
package policy

// Coefficients of the quadratic BMI risk term
// (BMIRiskQuad*bmi^2 + BMIRiskLinear*bmi + BMIRiskConstant).
const (
	BMIRiskQuad     = 0.0023
	BMIRiskLinear   = -0.0797
	BMIRiskConstant = 1.6927
)

// Parameters of the logistic age risk term
// (AgeRiskScale / (1 + e^(-AgeRiskSlope*(age-AgeRiskMidpoint)))).
const (
	AgeRiskScale    = 0.8861
	AgeRiskSlope    = 0.1164
	AgeRiskMidpoint = 52.8598
)

// CVDProbMax caps the combined risk product. There is deliberately no
// corresponding floor; see the risk package.
const CVDProbMax = 1.0

// BMI category upper bounds, exclusive. A BMI equal to a bound belongs to
// the next category up.
const (
	BMIUnderweightMax = 18.5
	BMINormalMax      = 25.0
	BMIOverweightMax  = 30.0
	BMIObeseMax       = 40.0
)

// Feature normalization ceilings. Raw values are divided by these and
// clamped to [0, 1].
const (
	AgeCeiling    = 100.0
	WeightCeiling = 200.0 // kg
	HeightCeiling = 250.0 // cm
)

// Split fractions. Boundaries are computed as floor(n*TrainFraction) and
// floor(n*(TrainFraction+TestFraction)); the validation set takes the
// remainder, so small datasets lose rows to training first.
const (
	TrainFraction = 0.7
	TestFraction  = 0.2
)

// Rounding applied to derived values before they are persisted.
const (
	BMIDecimals     = 2
	CVDProbDecimals = 4
)
