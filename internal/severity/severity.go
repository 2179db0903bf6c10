// Package severity provides severity level constants and utilities
// for differences reported by the differ, schema, and comparer packages.
//
// Two severity levels exist:
//   - SeverityBlocking: discrepancies that mark a file comparison as unmatched
//   - SeverityInformational: discrepancies surfaced for visibility only
//
// Informational differences arise only from value mismatches when
// strict-values mode is off.
package severity

// Severity indicates the severity level of a detected difference.
type Severity int

const (
	// SeverityBlocking indicates a discrepancy that causes a file's
	// comparison to be marked unmatched.
	SeverityBlocking Severity = iota

	// SeverityInformational indicates a discrepancy surfaced for
	// visibility but not counted against the match verdict.
	SeverityInformational
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityBlocking:
		return "blocking"
	case SeverityInformational:
		return "informational"
	default:
		return "unknown"
	}
}
