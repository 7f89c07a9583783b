package scaffold

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{"valid kebab-case", "framingham-extract", false, ""},
		{"valid simple", "cohort", false, ""},
		{"empty", "", true, "must not be empty"},
		{"path traversal dots", "../evil", true, "invalid path characters"},
		{"forward slash", "a/b", true, "invalid path characters"},
		{"backslash", "a\\b", true, "invalid path characters"},
		{"traversal masked by clean", "a/..", true, "invalid path characters"},
		{"nested traversal", "a/../b", true, "invalid path characters"},
		{"dot only", ".", true, "invalid path characters"},
		{"double dot embedded", "foo..bar", true, "invalid path characters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateName(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				if tc.errMsg != "" {
					assert.Contains(t, err.Error(), tc.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"framingham-extract", "Framingham Extract"},
		{"cvd-screening", "Cvd Screening"},
		{"cohort", "Cohort"},
		{"a-b-c", "A B C"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, TitleCase(tc.input))
		})
	}
}

func TestExampleCSV(t *testing.T) {
	content := ExampleCSV()

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	assert.Len(t, lines, 7)
	assert.Equal(t, "id,age,weight,height", lines[0])
	assert.Contains(t, content, "1,45,80.0,175.0")
	// An underweight subject is included so every category shows up.
	assert.Contains(t, content, "4,17,45.0,160.0")
}

func TestReadmeMD(t *testing.T) {
	content := ReadmeMD("framingham-extract", "Quarterly screening cohort.")

	assert.Contains(t, content, "# Framingham Extract")
	assert.Contains(t, content, "Quarterly screening cohort.")
	assert.Contains(t, content, "cohort run")
	assert.Contains(t, content, "cohort split --seed 42")
}

func TestReadmeMD_DefaultDescription(t *testing.T) {
	content := ReadmeMD("demo", "")

	assert.Contains(t, content, "# Demo")
	assert.Contains(t, content, "dataset preparation project")
}
