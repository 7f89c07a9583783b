package splitter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiolab/cohort/internal/artifact"
	"github.com/cardiolab/cohort/internal/subject"
)

// writeArtifact stores n labeled subjects with distinct ages so every
// sample is distinguishable after shuffling.
func writeArtifact(t *testing.T, n int) string {
	t.Helper()
	b := subject.NewBuckets()
	for i := 0; i < n; i++ {
		require.NoError(t, b.Add(subject.CategoryOverweight, subject.Labeled{
			Raw:     subject.Raw{SubjectID: fmt.Sprint(i), Age: i, Weight: 80, Height: 175},
			BMI:     26.12,
			CVDProb: float64(i) / 1000,
		}))
	}
	path := filepath.Join(t.TempDir(), "labeled_data.json")
	require.NoError(t, artifact.WriteLabeled(path, b))
	return path
}

func loadAndSplit(t *testing.T, n int, opts ...Option) *Splitter {
	t.Helper()
	s := New(opts...)
	require.NoError(t, s.Load(writeArtifact(t, n)))
	s.Split()
	return s
}

func TestSplitProportions(t *testing.T) {
	tests := []struct {
		total                        int
		wantTrain, wantTest, wantVal int
	}{
		{100, 70, 20, 10},
		{10, 7, 2, 1},
		{6, 4, 1, 1},
		{3, 2, 0, 1},
		{2, 1, 0, 1},
		{1, 0, 0, 1},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("total_%d", tt.total), func(t *testing.T) {
			s := loadAndSplit(t, tt.total)
			assert.Len(t, s.Training, tt.wantTrain)
			assert.Len(t, s.Test, tt.wantTest)
			assert.Len(t, s.Validation, tt.wantVal)
		})
	}
}

func TestSplitPartitionsWithoutLossOrDuplication(t *testing.T) {
	s := loadAndSplit(t, 100)

	seen := map[float64]int{}
	for _, set := range [][]subject.Sample{s.Training, s.Test, s.Validation} {
		for _, sample := range set {
			seen[sample.AgeNorm]++
		}
	}

	require.Len(t, seen, 100)
	for age, count := range seen {
		assert.Equal(t, 1, count, "age_norm %v", age)
	}
}

func TestSplitSeededIsReproducible(t *testing.T) {
	path := writeArtifact(t, 50)

	split := func(seed int64) *Splitter {
		s := New(WithSeed(seed))
		require.NoError(t, s.Load(path))
		s.Split()
		return s
	}

	a, b := split(42), split(42)
	assert.Equal(t, a.Training, b.Training)
	assert.Equal(t, a.Test, b.Test)
	assert.Equal(t, a.Validation, b.Validation)

	c := split(7)
	assert.NotEqual(t, a.Training, c.Training)
}

func TestLoadNormalizesSubjects(t *testing.T) {
	b := subject.NewBuckets()
	require.NoError(t, b.Add(subject.CategoryOverweight, subject.Labeled{
		Raw:     subject.Raw{SubjectID: "1", Age: 45, Weight: 80, Height: 175},
		BMI:     26.12,
		CVDProb: 0.2991,
	}))
	path := filepath.Join(t.TempDir(), "labeled_data.json")
	require.NoError(t, artifact.WriteLabeled(path, b))

	s := New()
	require.NoError(t, s.Load(path))
	s.Split()

	// A single sample falls through both floored boundaries into
	// validation.
	require.Empty(t, s.Training)
	require.Empty(t, s.Test)
	require.Len(t, s.Validation, 1)
	assert.Equal(t, subject.Sample{AgeNorm: 0.45, WeightNorm: 0.4, HeightNorm: 0.7, CVDProb: 0.2991}, s.Validation[0])
}

func TestLoadMissingArtifact(t *testing.T) {
	s := New()
	err := s.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Empty(t, s.Training)
}

func TestExport(t *testing.T) {
	s := loadAndSplit(t, 10, WithSeed(1))
	dir := filepath.Join(t.TempDir(), "datasets")
	require.NoError(t, s.Export(dir, false))

	wantCounts := map[string]int{
		TrainingFile:   7,
		TestFile:       2,
		ValidationFile: 1,
	}
	for name, want := range wantCounts {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)

		var rows []subject.Sample
		require.NoError(t, gocsv.UnmarshalBytes(data, &rows))
		assert.Len(t, rows, want, name)
	}
}

func TestExportCompressed(t *testing.T) {
	s := loadAndSplit(t, 10, WithSeed(1))
	dir := filepath.Join(t.TempDir(), "datasets")
	require.NoError(t, s.Export(dir, true))

	for _, name := range []string{TrainingFile, TestFile, ValidationFile} {
		_, err := os.Stat(filepath.Join(dir, name+".gz"))
		assert.NoError(t, err, name)
	}
}

func TestExportBeforeSplitWritesHeadersOnly(t *testing.T) {
	s := New()
	dir := t.TempDir()
	require.NoError(t, s.Export(dir, false))

	data, err := os.ReadFile(filepath.Join(dir, TrainingFile))
	require.NoError(t, err)
	assert.Equal(t, "age_norm,weight_norm,height_norm,cvd_prob\n", string(data))
}
