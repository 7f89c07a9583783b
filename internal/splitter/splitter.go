// Package splitter turns the labeled artifact into shuffled, normalized
// train/test/validation datasets.
package splitter

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/cardiolab/cohort/internal/artifact"
	"github.com/cardiolab/cohort/internal/dataset"
	"github.com/cardiolab/cohort/internal/normalize"
	"github.com/cardiolab/cohort/internal/policy"
	"github.com/cardiolab/cohort/internal/subject"
)

// Dataset file names, as downstream training jobs expect them.
const (
	TrainingFile   = "training_data.csv"
	TestFile       = "test_data.csv"
	ValidationFile = "validation_data.csv"
)

// Splitter loads labeled subjects, normalizes them and partitions the
// result into the three datasets.
type Splitter struct {
	Training   []subject.Sample
	Test       []subject.Sample
	Validation []subject.Sample

	samples []subject.Sample
	rng     *rand.Rand
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithSeed makes the shuffle reproducible. A negative seed keeps the
// non-deterministic default source.
func WithSeed(seed int64) Option {
	return func(s *Splitter) {
		if seed >= 0 {
			s.rng = rand.New(rand.NewSource(seed))
		}
	}
}

func New(opts ...Option) *Splitter {
	s := &Splitter{
		rng: rand.New(rand.NewSource(rand.Int63())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the labeled artifact at path and converts every subject
// into a normalized sample. Sample order follows the artifact's bucket
// order until Split shuffles it. A missing artifact keeps fs.ErrNotExist
// in the error chain.
func (s *Splitter) Load(path string) error {
	b, err := artifact.ReadLabeled(path)
	if err != nil {
		return err
	}

	subjects := b.Flatten()
	s.samples = make([]subject.Sample, 0, len(subjects))
	for _, subj := range subjects {
		f := normalize.Features(float64(subj.Age), subj.Weight, subj.Height)
		s.samples = append(s.samples, subject.Sample{
			AgeNorm:    f[0],
			WeightNorm: f[1],
			HeightNorm: f[2],
			CVDProb:    subj.CVDProb,
		})
	}
	return nil
}

// Split shuffles the loaded samples and partitions them 70/20/10. Both
// boundaries floor, so undersized inputs shortchange the earlier
// datasets: 10 samples split 7/2/1, a single sample lands in validation.
func (s *Splitter) Split() {
	n := len(s.samples)
	s.rng.Shuffle(n, func(i, j int) {
		s.samples[i], s.samples[j] = s.samples[j], s.samples[i]
	})

	trainEnd := int(math.Floor(float64(n) * policy.TrainFraction))
	testEnd := int(math.Floor(float64(n) * (policy.TrainFraction + policy.TestFraction)))

	s.Training = s.samples[:trainEnd]
	s.Test = s.samples[trainEnd:testEnd]
	s.Validation = s.samples[testEnd:]
}

// Export writes the three dataset files into dir, creating it if
// needed. With compress set each file gains a .gz suffix. The writes
// are independent and run concurrently.
func (s *Splitter) Export(dir string, compress bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	files := []struct {
		name    string
		samples []subject.Sample
	}{
		{TrainingFile, s.Training},
		{TestFile, s.Test},
		{ValidationFile, s.Validation},
	}

	eg := errgroup.Group{}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if compress {
			path += ".gz"
		}
		eg.Go(func() error {
			return dataset.WriteSamples(path, f.samples)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	slog.Debug("datasets exported",
		"dir", dir,
		"training", len(s.Training),
		"test", len(s.Test),
		"validation", len(s.Validation))
	return nil
}
