// Package apiveritas provides consumer-driven contract testing for JSON APIs.
//
// apiveritas executes a declared set of HTTP requests against a target API,
// persists the responses as timestamped snapshots, and compares two snapshots
// to detect structural or value-level contract drift.
//
// # Overview
//
// The library consists of the following packages:
//
//   - payload: Tagged JSON value representation with empty-payload normalization
//   - differ: Recursive structural comparison of two JSON payloads
//   - schema: Schema inference from a baseline payload, strictification, and validation
//   - comparer: Orchestrates per-file comparison of two snapshot folders into a run verdict
//   - store: Timestamped snapshot folder persistence
//   - runner: Sequential HTTP test-case execution with retry
//   - reporter: HTML and console rendering of comparison results
//   - config: YAML configuration loading
//   - mockserver: Deterministic mock HTTP server for CI runs
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/mariogalea/qualitymatters-apiveritas
//
// # Quick Start
//
// Compare the two most recent snapshot folders of a test suite:
//
//	import (
//	    "github.com/mariogalea/qualitymatters-apiveritas/comparer"
//	    "github.com/mariogalea/qualitymatters-apiveritas/store"
//	)
//
//	st := store.New("payloads")
//	c := comparer.New(comparer.Options{StrictSchema: true}, st, nil)
//	pair, err := c.LatestTwoPayloadFolders("orders-api")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if pair == nil {
//	    log.Fatal("need at least two snapshot runs to compare")
//	}
//	verdict, err := c.CompareFolders(pair.Previous, pair.Latest, "orders-api")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d of %d files matched\n", verdict.MatchedCount, verdict.TotalFiles)
//
// The apiveritas CLI (cmd/apiveritas) wraps these packages with test
// execution, snapshot persistence, report generation, and a mock server
// for CI pipelines.
package apiveritas
