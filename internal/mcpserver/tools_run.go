package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mariogalea/qualitymatters-apiveritas"
	"github.com/mariogalea/qualitymatters-apiveritas/runner"
	"github.com/mariogalea/qualitymatters-apiveritas/store"
)

type runTestsInput struct {
	ConfigPath string `json:"config_path,omitempty" jsonschema:"Path to the apiveritas config file; defaults to apiveritas.yaml"`
}

type requestOutcome struct {
	Name       string `json:"name"`
	StatusCode int    `json:"status_code,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

type runTestsOutput struct {
	Suite        string           `json:"suite"`
	Folder       string           `json:"folder"`
	SavedFiles   int              `json:"saved_files"`
	FailedCount  int              `json:"failed_count"`
	Outcomes     []requestOutcome `json:"outcomes"`
	PayloadsRoot string           `json:"payloads_root"`
}

func handleRunTests(ctx context.Context, _ *mcp.CallToolRequest, input runTestsInput) (*mcp.CallToolResult, runTestsOutput, error) {
	cfg, err := loadConfig(input.ConfigPath)
	if err != nil {
		return errResult(err), runTestsOutput{}, nil
	}

	run := runner.New(cfg.Timeout(), uint64(cfg.Request.MaxRetries), nil)
	run.UserAgent = apiveritas.UserAgent()
	responses, err := run.Run(ctx, cfg.Requests())
	if err != nil {
		return errResult(err), runTestsOutput{}, nil
	}

	payloads := make(map[string][]byte, len(responses))
	output := runTestsOutput{
		Suite:        cfg.Suite,
		PayloadsRoot: cfg.Payloads,
		Outcomes:     make([]requestOutcome, 0, len(responses)),
	}
	for _, resp := range responses {
		payloads[resp.Name] = resp.Body

		outcome := requestOutcome{
			Name:       resp.Name,
			StatusCode: resp.StatusCode,
			DurationMS: resp.Duration.Milliseconds(),
		}
		if resp.Err != nil {
			outcome.Error = sanitizeError(resp.Err)
			output.FailedCount++
		}
		output.Outcomes = append(output.Outcomes, outcome)
	}

	folder, err := store.New(cfg.Payloads).Save(cfg.Suite, payloads)
	if err != nil {
		return errResult(err), runTestsOutput{}, nil
	}
	output.Folder = folder
	output.SavedFiles = len(payloads)

	return nil, output, nil
}
