package reporter

import (
	"io"

	"github.com/mariogalea/qualitymatters-apiveritas/comparer"
	"github.com/mariogalea/qualitymatters-apiveritas/internal/cliutil"
)

// Console writes a human-readable run summary to w.
func Console(w io.Writer, verdict *comparer.RunVerdict) {
	cliutil.Writef(w, "Comparing %s: %s (baseline) vs %s (candidate)\n\n",
		verdict.Suite, verdict.OldFolder, verdict.NewFolder)

	for _, result := range verdict.Results {
		if result.Matched {
			cliutil.Writef(w, "✓ %s\n", result.FileName)
		} else {
			cliutil.Writef(w, "✗ %s\n", result.FileName)
		}
		for _, d := range result.Differences {
			cliutil.Writef(w, "    %s\n", d)
		}
	}

	cliutil.Writef(w, "\n%d/%d files matched", verdict.MatchedCount, verdict.TotalFiles)
	if verdict.AnyDifferences {
		cliutil.Writef(w, ", %d with differences\n", verdict.DiffCount)
	} else {
		cliutil.Writef(w, "\n")
	}
}
