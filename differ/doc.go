// Package differ compares two parsed JSON payloads structurally and reports
// typed difference records.
//
// The comparison is driven by the baseline (old) payload's key set: every key
// present in the baseline is checked for presence, type, and value in the
// candidate (new) payload. Missing keys and type changes are always blocking;
// value changes are blocking only in strict-values mode and informational
// otherwise.
//
// Arrays are compared as index-keyed objects. No ordering-insensitive array
// comparison is performed, so a reordered array registers as value or type
// mismatches at the affected indexes. This is a deliberate limitation:
// changing array semantics would change contract-test outcomes.
//
// The differ is purely functional over its two inputs and performs no I/O.
package differ
