package pipeline

import "regexp"

var (
	// </p>, case-insensitive. </pre> does not match.
	paragraphEndPattern = regexp.MustCompile(`(?i)</p\s*>`)

	// <br>, <br/>, <br />
	lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// SplitBreaks replaces every paragraph-closing tag and every line-break tag
// with a paragraph boundary. Each matching tag yields exactly one boundary;
// other tags pass through.
func SplitBreaks(fragment string) string {
	fragment = paragraphEndPattern.ReplaceAllLiteralString(fragment, Boundary)
	return lineBreakPattern.ReplaceAllLiteralString(fragment, Boundary)
}
