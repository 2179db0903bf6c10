package main

import (
	"fmt"
	"os"

	"github.com/mariogalea/qualitymatters-apiveritas"
	"github.com/mariogalea/qualitymatters-apiveritas/cmd/apiveritas/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("apiveritas v%s\n", apiveritas.Version())
	case "help", "-h", "--help":
		printUsage()
	case "test":
		if err := commands.HandleTest(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "compare":
		if err := commands.HandleCompare(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "folders":
		if err := commands.HandleFolders(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mock":
		if err := commands.HandleMock(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or an empty string when nothing is close enough.
func suggestCommand(input string) string {
	known := []string{"test", "compare", "folders", "mock", "mcp", "version", "help"}

	best := ""
	bestDistance := 3
	for _, candidate := range known {
		if d := editDistance(input, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println("apiveritas - consumer-driven contract testing for JSON APIs")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  apiveritas <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  test      Execute the declared HTTP requests and snapshot the responses")
	fmt.Println("  compare   Compare two snapshot folders and report contract differences")
	fmt.Println("  folders   List the snapshot folders recorded for a suite")
	fmt.Println("  mock      Serve canned JSON responses for deterministic runs")
	fmt.Println("  mcp       Run an MCP server over stdio")
	fmt.Println("  version   Print the version")
	fmt.Println("  help      Print this help")
	fmt.Println()
	fmt.Println("Run 'apiveritas <command> --help' for command-specific flags.")
}
