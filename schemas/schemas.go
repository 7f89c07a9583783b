// Package schemas carries the embedded JSON Schemas for cohort
// artifacts.
package schemas

import _ "embed"

// LabeledSchemaJSON is the JSON Schema for the labeled subject
// artifact. cvd_prob has a ceiling but deliberately no floor, matching
// what the labeler writes.
//
//go:embed labeled.schema.json
var LabeledSchemaJSON string
