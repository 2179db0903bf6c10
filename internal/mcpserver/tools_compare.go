package mcpserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mariogalea/qualitymatters-apiveritas/comparer"
	"github.com/mariogalea/qualitymatters-apiveritas/store"
)

type compareInput struct {
	ConfigPath     string `json:"config_path,omitempty"     jsonschema:"Path to the apiveritas config file; defaults to apiveritas.yaml"`
	OldFolder      string `json:"old_folder,omitempty"      jsonschema:"Baseline snapshot folder id; defaults to the second most recent"`
	NewFolder      string `json:"new_folder,omitempty"      jsonschema:"Candidate snapshot folder id; defaults to the most recent"`
	StrictSchema   *bool  `json:"strict_schema,omitempty"   jsonschema:"Reject keys absent from the baseline; overrides the config file"`
	StrictValues   *bool  `json:"strict_values,omitempty"   jsonschema:"Treat changed scalar values as blocking; overrides the config file"`
	TolerateEmpty  *bool  `json:"tolerate_empty,omitempty"  jsonschema:"Treat empty responses as matched instead of blocking; overrides the config file"`
}

type compareDifference struct {
	File     string `json:"file"`
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type compareOutput struct {
	Suite          string              `json:"suite"`
	OldFolder      string              `json:"old_folder"`
	NewFolder      string              `json:"new_folder"`
	MatchedCount   int                 `json:"matched_count"`
	DiffCount      int                 `json:"diff_count"`
	TotalFiles     int                 `json:"total_files"`
	BreakingChange bool                `json:"breaking_change"`
	Differences    []compareDifference `json:"differences,omitempty"`
	Summary        string              `json:"summary"`
}

func handleCompare(_ context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, compareOutput, error) {
	cfg, err := loadConfig(input.ConfigPath)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}

	opts := cfg.Options()
	if input.StrictSchema != nil {
		opts.StrictSchema = *input.StrictSchema
	}
	if input.StrictValues != nil {
		opts.StrictValues = *input.StrictValues
	}
	if input.TolerateEmpty != nil {
		opts.TolerateEmptyResponses = *input.TolerateEmpty
	}

	cmp := comparer.New(opts, store.New(cfg.Payloads), nil)

	oldFolder, newFolder := input.OldFolder, input.NewFolder
	if oldFolder == "" || newFolder == "" {
		pair, err := cmp.LatestTwoPayloadFolders(cfg.Suite)
		if err != nil {
			return errResult(err), compareOutput{}, nil
		}
		if pair == nil {
			return errResult(fmt.Errorf("suite %q has fewer than two snapshot folders; run run_tests first", cfg.Suite)), compareOutput{}, nil
		}
		if oldFolder == "" {
			oldFolder = pair.Previous
		}
		if newFolder == "" {
			newFolder = pair.Latest
		}
	}

	verdict, err := cmp.CompareFolders(oldFolder, newFolder, cfg.Suite)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}

	output := compareOutput{
		Suite:        verdict.Suite,
		OldFolder:    verdict.OldFolder,
		NewFolder:    verdict.NewFolder,
		MatchedCount: verdict.MatchedCount,
		DiffCount:    verdict.DiffCount,
		TotalFiles:   verdict.TotalFiles,
	}
	for _, result := range verdict.Results {
		for _, d := range result.Differences {
			if d.IsBlocking() {
				output.BreakingChange = true
			}
			output.Differences = append(output.Differences, compareDifference{
				File:     result.FileName,
				Path:     d.Path,
				Kind:     string(d.Kind),
				Severity: d.Severity.String(),
				Message:  d.Message,
			})
		}
	}
	output.Summary = buildCompareSummary(output)

	return nil, output, nil
}

func buildCompareSummary(output compareOutput) string {
	if output.DiffCount == 0 {
		return fmt.Sprintf("All %s matched.", formatCount(output.TotalFiles, "file"))
	}

	summary := ""
	if output.BreakingChange {
		summary = "Breaking contract change detected. "
	}
	summary += formatCount(output.DiffCount, "file") + " with differences out of " +
		strconv.Itoa(output.TotalFiles) + "."
	return summary
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
