package pipeline

import "strings"

// InjectStyle gives every paragraph a style reference to styleID.
//
// A paragraph without properties receives a w:pPr holding the reference. A
// paragraph whose properties lack a w:pStyle receives the reference as their
// first child. A paragraph that already names a style keeps it, so list
// paragraphs stay on the list style and repeated calls change nothing.
func InjectStyle(fragment, styleID string) string {
	ref := styleReference(styleID)

	var b strings.Builder
	b.Grow(len(fragment) + strings.Count(fragment, paragraphTag)*(len(ref)+len(propertiesTag)+len(propertiesEndTag)))

	rest := fragment
	for {
		i := strings.Index(rest, paragraphTag)
		if i < 0 {
			b.WriteString(rest)
			return b.String()
		}
		i += len(paragraphTag)
		b.WriteString(rest[:i])
		rest = rest[i:]

		if !strings.HasPrefix(rest, propertiesTag) {
			b.WriteString(propertiesTag + ref + propertiesEndTag)
			continue
		}
		if end := strings.Index(rest, propertiesEndTag); end >= 0 && strings.Contains(rest[:end], "<w:pStyle") {
			continue
		}
		b.WriteString(propertiesTag + ref)
		rest = rest[len(propertiesTag):]
	}
}
