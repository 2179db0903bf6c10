package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mariogalea/qualitymatters-apiveritas/store"
)

type listRunsInput struct {
	ConfigPath string `json:"config_path,omitempty" jsonschema:"Path to the apiveritas config file; defaults to apiveritas.yaml"`
	Suite      string `json:"suite,omitempty"       jsonschema:"Suite name; defaults to the suite in the config file"`
}

type listRunsOutput struct {
	Suite   string   `json:"suite"`
	Folders []string `json:"folders"`
	Count   int      `json:"count"`
}

func handleListRuns(_ context.Context, _ *mcp.CallToolRequest, input listRunsInput) (*mcp.CallToolResult, listRunsOutput, error) {
	cfg, err := loadConfig(input.ConfigPath)
	if err != nil {
		return errResult(err), listRunsOutput{}, nil
	}

	suite := input.Suite
	if suite == "" {
		suite = cfg.Suite
	}

	folders, err := store.New(cfg.Payloads).Folders(suite)
	if err != nil {
		return errResult(err), listRunsOutput{}, nil
	}

	return nil, listRunsOutput{Suite: suite, Folders: folders, Count: len(folders)}, nil
}
