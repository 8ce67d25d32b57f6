// Package cleaner sanitizes HTML before it is converted to paragraph markup.
package cleaner

import (
	"github.com/microcosm-cc/bluemonday"
)

// Elements kept by the default policy. Everything else is stripped and its
// text kept, except script and style, whose content is dropped.
var allowedElements = []string{
	"p", "br", "div",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li",
	"strong", "b", "em", "i", "u", "ins", "s", "strike", "del",
	"sub", "sup", "span", "mark",
	"code", "kbd", "samp", "tt", "pre",
}

// Elements whose style attribute survives.
var styledElements = []string{
	"p", "div", "h1", "h2", "h3", "h4", "h5", "h6",
	"span", "strong", "b", "em", "i", "u", "s", "code", "mark", "pre",
}

// CSS properties the stylist understands.
var allowedProperties = []string{
	"color", "background-color", "background",
	"font-weight", "font-style", "font-size", "font-family",
	"text-decoration", "text-decoration-line", "vertical-align",
	"text-align", "margin-left", "padding-left", "text-indent",
}

// PolicyCleaner sanitizes HTML with a bluemonday policy. It is safe for
// concurrent use.
type PolicyCleaner struct {
	policy *bluemonday.Policy
}

// NewPolicyCleaner returns a cleaner that keeps the structural and
// formatting elements the converter handles.
func NewPolicyCleaner() *PolicyCleaner {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedElements...)
	p.AllowStyles(allowedProperties...).OnElements(styledElements...)
	return &PolicyCleaner{policy: p}
}

// NewCleaner wraps an existing policy.
func NewCleaner(policy *bluemonday.Policy) *PolicyCleaner {
	return &PolicyCleaner{policy: policy}
}

// Clean returns the sanitized HTML.
func (c *PolicyCleaner) Clean(html string) string {
	return c.policy.Sanitize(html)
}
