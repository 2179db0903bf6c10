// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes apiveritas capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mariogalea/qualitymatters-apiveritas"
	"github.com/mariogalea/qualitymatters-apiveritas/config"
)

const serverInstructions = `apiveritas MCP server — captures JSON API response snapshots and compares them for breaking contract changes.

All tools read the suite definition from an apiveritas.yaml config file. Pass config_path to point at a different file; it defaults to apiveritas.yaml in the working directory.

Typical flow:
1. run_tests — execute the declared HTTP requests and save their responses as a timestamped snapshot folder
2. run_tests again after the API changed
3. compare — diff the two most recent snapshot folders and report blocking vs informational differences

Use list_runs to see which snapshot folders exist for a suite.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "apiveritas", Version: apiveritas.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_tests",
		Description: "Execute the HTTP requests declared in the config file and save each JSON response into a new timestamped snapshot folder. Returns the folder id and per-request outcomes. Requests that fail are recorded as empty payloads and reported, not fatal.",
	}, handleRunTests)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare",
		Description: "Compare two snapshot folders of a suite and report contract differences. Defaults to the two most recent folders; pass old_folder/new_folder to pin specific ones. Blocking differences (missing keys, type changes, schema violations) indicate breaking changes; informational ones are value drift. Strictness toggles override the config file.",
	}, handleCompare)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_runs",
		Description: "List the snapshot folders recorded for a suite, newest first. Each folder name is the capture timestamp.",
	}, handleListRuns)
}

// loadConfig resolves the config path for a tool call, defaulting to
// config.DefaultPath when the input leaves it empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath
	}
	return config.Load(path)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
