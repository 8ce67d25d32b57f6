package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Non-breaking spaces, as entities or as the literal character.
	nbspPattern = regexp.MustCompile(`(?i)&nbsp;|&#160;|&#x0*a0;|\x{00A0}`)

	// One whitespace character other than a space plus any whitespace after
	// it, or two or more whitespace characters of any kind.
	insignificantSpacePattern = regexp.MustCompile(`[^\S ]\s*|\s{2,}`)

	// Opening or closing tags of elements whose whitespace is significant.
	protectedTagPattern = regexp.MustCompile(`(?i)<(/?)(?:textarea|pre|script)\b`)
)

// NormalizeSpaces replaces non-breaking spaces with spaces, marks every text
// run as whitespace-preserving, and collapses insignificant whitespace to a
// single space outside pre, textarea and script content.
func NormalizeSpaces(fragment string) string {
	fragment = nbspPattern.ReplaceAllLiteralString(fragment, " ")
	fragment = strings.ReplaceAll(fragment, textTag, preservedTextTag)
	return collapseSpaces(fragment)
}

// collapseSpaces splits the fragment at protected tags. A segment is left
// alone when the next protected tag after it is a closing tag, which means
// the segment sits inside a protected element. Text after the last protected
// tag is never protected.
func collapseSpaces(fragment string) string {
	tags := protectedTagPattern.FindAllStringSubmatchIndex(fragment, -1)
	if len(tags) == 0 {
		return insignificantSpacePattern.ReplaceAllLiteralString(fragment, " ")
	}

	var b strings.Builder
	b.Grow(len(fragment))
	last := 0
	for _, m := range tags {
		segment := fragment[last:m[0]]
		if closing := m[3] > m[2]; closing {
			b.WriteString(segment)
		} else {
			b.WriteString(insignificantSpacePattern.ReplaceAllLiteralString(segment, " "))
		}
		b.WriteString(fragment[m[0]:m[1]])
		last = m[1]
	}
	b.WriteString(insignificantSpacePattern.ReplaceAllLiteralString(fragment[last:], " "))
	return b.String()
}
