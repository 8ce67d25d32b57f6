// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Suggest the first user-level location that was searched
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-html2ooxml/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnsupportedInput returns hints for files with an unknown extension.
func ForUnsupportedInput(supported []string) string {
	if len(supported) == 0 {
		return ""
	}
	return format("supported extensions: " + strings.Join(supported, ", ") + "; use - to read stdin")
}

// ForStyleID returns hints for rejected style identifiers.
func ForStyleID() string {
	return format("use the style ID from styles.xml (e.g. Heading1), not its display name")
}

// ForNumbering returns hints for numbering collisions with an existing document.
func ForNumbering() string {
	return format("pick a --numbering-start above the highest w:numId already in the document")
}

// ForDeepNesting returns hints for lists nested deeper than one level.
func ForDeepNesting() string {
	return formatHints([]string{
		"only one level of nesting is flattened",
		"deeper lists are kept as text",
	})
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
