package differ

import (
	"fmt"

	"github.com/mariogalea/qualitymatters-apiveritas/internal/severity"
)

// DifferenceKind identifies the category of a detected discrepancy.
type DifferenceKind string

const (
	// KindMissingKey indicates a key present in the baseline payload but
	// absent from the candidate payload.
	KindMissingKey DifferenceKind = "missing-key"
	// KindTypeMismatch indicates a key whose JSON type changed between
	// baseline and candidate.
	KindTypeMismatch DifferenceKind = "type-mismatch"
	// KindValueMismatch indicates a primitive whose value changed.
	KindValueMismatch DifferenceKind = "value-mismatch"
	// KindAdditionalProperty indicates a key present in the candidate but
	// absent from the baseline's inferred shape (strict-schema mode only).
	KindAdditionalProperty DifferenceKind = "additional-property"
	// KindSchemaViolation indicates a generic schema validation failure of
	// the candidate against the baseline's inferred schema.
	KindSchemaViolation DifferenceKind = "schema-violation"
	// KindFileMissing indicates a snapshot file present in the baseline
	// folder but absent from the candidate folder.
	KindFileMissing DifferenceKind = "file-missing"
	// KindEmptyPayload indicates one or both payloads were empty, missing,
	// or unparsable.
	KindEmptyPayload DifferenceKind = "empty-payload"
)

// Severity indicates whether a difference blocks the match verdict.
type Severity = severity.Severity

const (
	// SeverityBlocking marks a difference that causes the file comparison
	// to be reported as unmatched.
	SeverityBlocking = severity.SeverityBlocking
	// SeverityInformational marks a difference surfaced for visibility only.
	// Only value mismatches in loose-value mode carry this severity.
	SeverityInformational = severity.SeverityInformational
)

// RootPath is the path reported for differences at the payload root.
const RootPath = "#"

// Difference represents one detected discrepancy between two payloads.
// Differences are created during a single comparison pass and never mutated.
type Difference struct {
	// Path is the dot-delimited key path from the payload root ("#" for root)
	Path string
	// Kind indicates the category of the discrepancy
	Kind DifferenceKind
	// Message is a human-readable description of the discrepancy
	Message string
	// Severity indicates whether the difference blocks the match verdict
	Severity Severity
}

// String returns a formatted string representation of the difference
func (d Difference) String() string {
	var symbol string
	switch d.Severity {
	case SeverityBlocking:
		symbol = "✗"
	case SeverityInformational:
		symbol = "ℹ"
	default:
		symbol = "·"
	}
	return fmt.Sprintf("%s %s [%s]: %s", symbol, d.Path, d.Kind, d.Message)
}

// IsBlocking reports whether the difference counts against the match verdict.
func (d Difference) IsBlocking() bool {
	return d.Severity == SeverityBlocking
}

// Differ performs recursive structural comparison of two JSON payloads
type Differ struct {
	// StrictValues controls the severity of primitive value mismatches.
	// When true, a changed value is a blocking difference; when false it
	// is surfaced as informational only.
	StrictValues bool
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{}
}
