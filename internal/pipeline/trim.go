package pipeline

import (
	"regexp"
	"strings"
)

var (
	// An opening paragraph tag, not <w:pPr>.
	paragraphOpenPattern = regexp.MustCompile(`<w:p[\s>]`)

	// Run properties carry no visible content on their own.
	runPropertiesPattern = regexp.MustCompile(`(?s)<w:rPr>.*?</w:rPr>`)

	// Paragraph, run and text tags, opening or closing, with any attributes.
	shellTagPattern = regexp.MustCompile(`</?w:(?:p|r|t)(?:\s[^>]*)?>`)
)

// TrimBoundaries drops the empty paragraphs that paragraph splitting leaves
// at the edges of a fragment.
//
// The fragment is read as a sequence of paragraphs ending in </w:p>. A first
// paragraph that was never opened is completed with a paragraph shell, and
// anything after the last </w:p> is an open paragraph. Leading empty
// paragraphs are dropped. When an open paragraph ends the fragment, the empty
// paragraphs right before it are dropped, and it is dropped too if empty or
// closed otherwise. Trailing empty paragraphs that are already closed stay.
//
// The result contains only closed paragraphs, so a second call returns it
// unchanged.
func TrimBoundaries(fragment string) string {
	pieces := strings.Split(fragment, paragraphEndTag)
	open := pieces[len(pieces)-1]

	paragraphs := make([]string, 0, len(pieces)-1)
	for _, p := range pieces[:len(pieces)-1] {
		paragraphs = append(paragraphs, p+paragraphEndTag)
	}
	if len(paragraphs) > 0 && !paragraphOpenPattern.MatchString(paragraphs[0]) {
		paragraphs[0] = ParagraphOpen + paragraphs[0]
	}

	for len(paragraphs) > 0 && isEmptyParagraph(paragraphs[0]) {
		paragraphs = paragraphs[1:]
	}

	if strings.TrimSpace(open) != "" {
		if !paragraphOpenPattern.MatchString(open) {
			open = ParagraphOpen + open
		}
		for len(paragraphs) > 0 && isEmptyParagraph(paragraphs[len(paragraphs)-1]) {
			paragraphs = paragraphs[:len(paragraphs)-1]
		}
		if !isEmptyParagraph(open) {
			paragraphs = append(paragraphs, open+ParagraphClose)
		}
	}

	return strings.Join(paragraphs, "")
}

// isEmptyParagraph reports whether a paragraph holds nothing but its shell,
// run properties and whitespace. Paragraph properties count as content.
func isEmptyParagraph(p string) bool {
	p = runPropertiesPattern.ReplaceAllLiteralString(p, "")
	p = shellTagPattern.ReplaceAllLiteralString(p, "")
	return strings.TrimSpace(p) == ""
}
