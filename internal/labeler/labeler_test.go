package labeler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiolab/cohort/internal/risk"
	"github.com/cardiolab/cohort/internal/subject"
)

func TestLabelReferenceSubject(t *testing.T) {
	labeled, category, err := Label(subject.Raw{SubjectID: "1", Age: 45, Weight: 80, Height: 175})
	require.NoError(t, err)

	assert.Equal(t, subject.CategoryOverweight, category)
	assert.InDelta(t, 26.12, labeled.BMI, 1e-9)
	assert.Equal(t, risk.CVDProbability(26.12, 45), labeled.CVDProb)
	assert.InDelta(t, 0.2991, labeled.CVDProb, 1e-9)
}

func TestLabelUsesRoundedBMIForRisk(t *testing.T) {
	// The probability must be derivable from the stored two-decimal
	// BMI, not from the unrounded intermediate.
	labeled, _, err := Label(subject.Raw{SubjectID: "x", Age: 61, Weight: 95.3, Height: 172.8})
	require.NoError(t, err)
	assert.Equal(t, risk.CVDProbability(labeled.BMI, 61), labeled.CVDProb)
}

func TestLabelRejectsDegenerateHeight(t *testing.T) {
	for _, height := range []float64{0, -170} {
		_, _, err := Label(subject.Raw{SubjectID: "9", Age: 30, Weight: 70, Height: height})
		require.Error(t, err, "height %v", height)
		assert.Contains(t, err.Error(), "subject 9: height must be positive")
	}
}

func TestProcessBucketsByCategory(t *testing.T) {
	records := []subject.Raw{
		{SubjectID: "1", Age: 45, Weight: 80, Height: 175},      // overweight
		{SubjectID: "2", Age: 29, Weight: 62.5, Height: 168.2},  // normal
		{SubjectID: "3", Age: 61, Weight: 95.3, Height: 172.8},  // obese
		{SubjectID: "4", Age: 17, Weight: 42.5, Height: 170},    // underweight
		{SubjectID: "5", Age: 52, Weight: 110.2, Height: 165.5}, // morbid_obese
		{SubjectID: "6", Age: 33, Weight: 70, Height: 175},      // normal
	}

	b, err := Process(records)
	require.NoError(t, err)

	assert.Equal(t, 6, b.Total())
	assert.Len(t, b.Bucket(subject.CategoryUnderweight), 1)
	assert.Len(t, b.Bucket(subject.CategoryNormal), 2)
	assert.Len(t, b.Bucket(subject.CategoryOverweight), 1)
	assert.Len(t, b.Bucket(subject.CategoryObese), 1)
	assert.Len(t, b.Bucket(subject.CategoryMorbidObese), 1)

	over := b.Bucket(subject.CategoryOverweight)[0]
	assert.Equal(t, "1", over.SubjectID)
	assert.InDelta(t, 26.12, over.BMI, 1e-9)
}

func TestProcessAbortsOnFirstBadRecord(t *testing.T) {
	records := []subject.Raw{
		{SubjectID: "1", Age: 45, Weight: 80, Height: 175},
		{SubjectID: "2", Age: 30, Weight: 70, Height: 0},
		{SubjectID: "3", Age: 29, Weight: 62.5, Height: 168.2},
	}

	b, err := Process(records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subject 2")
	assert.Nil(t, b)
}

func TestProcessEmptyInput(t *testing.T) {
	b, err := Process(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Total())
	for _, c := range subject.Categories {
		assert.NotNil(t, b.Bucket(c))
	}
}
