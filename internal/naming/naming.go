// Package naming provides shared name sanitization utilities.
package naming

import (
	"strings"
	"unicode"
)

// SafeFileName converts a declared test case name into a file-system safe
// name: runs of whitespace collapse to a single underscore and path
// separators are replaced with hyphens.
// Example: "get  user orders" -> "get_user_orders"
func SafeFileName(name string) string {
	var result strings.Builder
	pendingUnderscore := false

	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsSpace(r):
			pendingUnderscore = true
		case r == '/' || r == '\\':
			if pendingUnderscore {
				result.WriteRune('_')
				pendingUnderscore = false
			}
			result.WriteRune('-')
		default:
			if pendingUnderscore {
				result.WriteRune('_')
				pendingUnderscore = false
			}
			result.WriteRune(r)
		}
	}

	return result.String()
}
