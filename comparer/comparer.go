package comparer

import (
	"go.uber.org/zap"

	"github.com/mariogalea/qualitymatters-apiveritas/differ"
	"github.com/mariogalea/qualitymatters-apiveritas/payload"
	"github.com/mariogalea/qualitymatters-apiveritas/schema"
	"github.com/mariogalea/qualitymatters-apiveritas/store"
)

// Options holds the configuration snapshot a comparison run is evaluated
// against. It is passed in once at construction and never re-fetched
// mid-run, so a single run always sees one consistent configuration.
type Options struct {
	// StrictSchema forbids object properties in the candidate payload that
	// are absent from the baseline's inferred shape.
	StrictSchema bool
	// StrictValues makes primitive value mismatches blocking instead of
	// informational.
	StrictValues bool
	// TolerateEmptyResponses treats empty or missing payload pairs as
	// matched-with-warning rather than blocking.
	TolerateEmptyResponses bool
}

// FolderPair identifies the two most recent snapshot folders of a suite.
type FolderPair struct {
	// Previous is the older folder, used as the baseline.
	Previous string
	// Latest is the most recent folder, used as the candidate.
	Latest string
}

// FileComparisonResult is the outcome of comparing one snapshot file pair.
type FileComparisonResult struct {
	// FileName is the payload file name within the snapshot folders
	FileName string
	// Matched is true iff the comparison produced zero blocking differences
	Matched bool
	// Differences holds all detected discrepancies, blocking first,
	// informational last
	Differences []differ.Difference
	// OldContent is the parsed baseline payload, retained for report rendering
	OldContent payload.Value
	// NewContent is the parsed candidate payload, retained for report rendering
	NewContent payload.Value
}

// BlockingCount returns the number of blocking differences in the result.
func (r FileComparisonResult) BlockingCount() int {
	n := 0
	for _, d := range r.Differences {
		if d.IsBlocking() {
			n++
		}
	}
	return n
}

// RunVerdict aggregates the per-file outcomes of one comparison run.
// It is immutable after CompareFolders returns.
type RunVerdict struct {
	// RunID uniquely identifies this comparison run
	RunID string
	// Suite is the test suite name the run belongs to
	Suite string
	// OldFolder is the baseline snapshot folder ID
	OldFolder string
	// NewFolder is the candidate snapshot folder ID
	NewFolder string
	// MatchedCount is the number of files that matched
	MatchedCount int
	// DiffCount is the number of files with blocking differences
	DiffCount int
	// TotalFiles is the number of files compared
	TotalFiles int
	// AnyDifferences is true iff at least one file did not match
	AnyDifferences bool
	// Results holds one entry per compared file, in comparison order
	Results []FileComparisonResult
}

// Reporter renders a run verdict into an external artifact (an HTML report
// file, typically) and returns the path it was written to. The comparer
// never inspects report content; it only triggers generation and logs the
// returned path.
type Reporter interface {
	Write(verdict *RunVerdict) (string, error)
}

// Comparer orchestrates the comparison of two snapshot folders.
type Comparer struct {
	// Reporter, when set, is invoked with the verdict at the end of every
	// run. Report failures are logged, never fatal.
	Reporter Reporter

	opts      Options
	store     *store.Store
	logger    *zap.Logger
	differ    *differ.Differ
	validator *schema.Validator
}

// New creates a Comparer over the given snapshot store. A nil logger
// disables logging.
func New(opts Options, st *store.Store, logger *zap.Logger) *Comparer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparer{
		opts:      opts,
		store:     st,
		logger:    logger,
		differ:    &differ.Differ{StrictValues: opts.StrictValues},
		validator: schema.NewValidator(),
	}
}

// Options returns the configuration snapshot the comparer was built with.
func (c *Comparer) Options() Options {
	return c.opts
}

// LatestTwoPayloadFolders returns the two most recent snapshot folders of a
// suite as (previous, latest). When fewer than two folders exist it returns
// (nil, nil): nothing to compare, which is distinct from a run with zero
// differences.
func (c *Comparer) LatestTwoPayloadFolders(suite string) (*FolderPair, error) {
	previous, latest, ok, err := c.store.LatestTwo(suite)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &FolderPair{Previous: previous, Latest: latest}, nil
}
