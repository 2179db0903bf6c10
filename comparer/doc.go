// Package comparer orchestrates snapshot folder comparison.
//
// For each payload file in the baseline folder, the comparer loads both
// snapshots, resolves empty or missing payloads per the configured
// tolerance, runs the structural differ, infers a schema from the baseline,
// optionally strictifies it, validates the candidate against it, and merges
// all findings into a per-file result. Per-file outcomes roll up into a
// RunVerdict consumed by reporters and by the CLI exit-code decision.
//
// A comparison run is single-threaded and reads two immutable, finalized
// snapshot folders; it never mutates them.
package comparer
