package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// asciiSpace is the set trimmed from list item text.
const asciiSpace = " \t\n\r\v\f\x00"

// Newlines of any convention inside a list region.
var listNewlines = regexp.MustCompile(`\r\n|\r|\n`)

// ListContext carries list numbering between calls to FlattenLists.
// The zero value is not ready for use; call NewListContext.
type ListContext struct {
	// Next is the numbering id given to the next top-level list.
	Next int
	// Lists counts the top-level lists converted so far.
	Lists int
}

// NewListContext returns a context whose first list receives numbering id start.
// Values below 1 start at 1.
func NewListContext(start int) ListContext {
	if start < 1 {
		start = 1
	}
	return ListContext{Next: start}
}

func (c ListContext) advance() ListContext {
	c.Next++
	c.Lists++
	return c
}

// DiagnosticKind classifies a non-fatal conversion problem.
type DiagnosticKind string

// DiagnosticDeepNesting reports a list nested two or more levels deep.
// Such lists are kept verbatim inside the item text instead of being flattened.
const DiagnosticDeepNesting DiagnosticKind = "deep-nesting"

// Diagnostic describes input that converted without error but not faithfully.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	// NumberingID is the numbering id of the top-level list involved.
	NumberingID int
}

// FlattenLists converts ul/ol/li structure into numbered paragraphs.
//
// Each top-level list takes the numbering id lists.Next, and every item of it
// becomes a paragraph referencing listStyle at level 0 with that id. Two empty
// paragraphs follow each list. A list nested inside an item is denested into
// " - text" lines separated by line breaks; lists nested deeper than that are
// left verbatim and reported as DiagnosticDeepNesting.
//
// The returned context has Next advanced once per top-level list.
func FlattenLists(fragment string, lists ListContext, listStyle string) (string, ListContext, []Diagnostic) {
	if lists.Next < 1 {
		lists = NewListContext(lists.Next)
	}

	p := &listParser{toks: tokenize(fragment)}
	var b strings.Builder
	b.Grow(len(fragment))

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		p.pos++
		if t.kind != html.StartTagToken || !isList(t.name) {
			b.WriteString(t.raw)
			continue
		}

		p.numID = lists.Next
		entries := p.parseList(0)
		b.WriteString(renderList(entries, lists.Next, listStyle))
		lists = lists.advance()
	}

	return b.String(), lists, p.diags
}

// token is one lexical unit of the fragment. raw holds the exact source bytes.
type token struct {
	kind html.TokenType
	raw  string
	name string
}

// tokenize splits a fragment into tokens whose raw values concatenate back to
// the input.
func tokenize(fragment string) []token {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var toks []token
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return toks
		}
		// Raw must be copied before TagName, which lowercases the buffer in place.
		t := token{kind: tt, raw: string(z.Raw())}
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			t.name = string(name)
		}
		toks = append(toks, t)
	}
}

func isList(name string) bool {
	return name == "ul" || name == "ol"
}

func (t token) isStart(name string) bool {
	return t.kind == html.StartTagToken && t.name == name
}

func (t token) isEnd(name string) bool {
	return t.kind == html.EndTagToken && t.name == name
}

// listEntry is an item's text or markup found between items.
type listEntry struct {
	item bool
	text string
}

type listParser struct {
	toks  []token
	pos   int
	numID int
	diags []Diagnostic
}

// parseList consumes tokens up to and including the end tag of the list whose
// start tag was just consumed. Unclosed lists end at end of input.
func (p *listParser) parseList(depth int) []listEntry {
	var entries []listEntry
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		switch {
		case t.kind == html.EndTagToken && isList(t.name):
			p.pos++
			return entries
		case t.isStart("li"):
			p.pos++
			entries = append(entries, listEntry{item: true, text: p.parseItem(depth)})
		case t.kind == html.StartTagToken && isList(t.name):
			// A list directly inside a list is an item with no leading text.
			entries = append(entries, listEntry{item: true, text: p.parseItem(depth)})
		case t.isEnd("li"):
			p.pos++
		default:
			p.pos++
			entries = append(entries, listEntry{text: t.raw})
		}
	}
	return entries
}

// parseItem consumes an item body. It stops after </li>, or before the next
// <li> or the end tag of the enclosing list.
func (p *listParser) parseItem(depth int) string {
	var lead, tail strings.Builder
	var nested []string
	denested := false

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		switch {
		case t.isEnd("li"):
			p.pos++
			return joinItem(lead.String(), nested, tail.String(), denested)
		case t.isStart("li"), t.kind == html.EndTagToken && isList(t.name):
			return joinItem(lead.String(), nested, tail.String(), denested)
		case t.kind == html.StartTagToken && isList(t.name):
			p.pos++
			if depth == 0 {
				nested = append(nested, p.parseNested()...)
				denested = true
				continue
			}
			p.diags = append(p.diags, Diagnostic{
				Kind:        DiagnosticDeepNesting,
				Message:     fmt.Sprintf("list nested %d levels deep left unflattened", depth+1),
				NumberingID: p.numID,
			})
			lead.WriteString(p.rawList(t))
		default:
			p.pos++
			if denested {
				tail.WriteString(t.raw)
			} else {
				lead.WriteString(t.raw)
			}
		}
	}
	return joinItem(lead.String(), nested, tail.String(), denested)
}

// parseNested returns the " - text" lines of a list nested one level deep.
// Whitespace between nested items is dropped; other stray markup is kept.
func (p *listParser) parseNested() []string {
	var lines []string
	for _, e := range p.parseList(1) {
		switch {
		case e.item:
			lines = append(lines, " - "+strings.Trim(e.text, asciiSpace))
		case strings.Trim(e.text, asciiSpace) != "":
			lines = append(lines, e.text)
		}
	}
	return lines
}

// rawList consumes a list verbatim, including any lists inside it.
func (p *listParser) rawList(open token) string {
	var b strings.Builder
	b.WriteString(open.raw)
	depth := 1
	for p.pos < len(p.toks) && depth > 0 {
		t := p.toks[p.pos]
		p.pos++
		b.WriteString(t.raw)
		if !isList(t.name) {
			continue
		}
		switch t.kind {
		case html.StartTagToken:
			depth++
		case html.EndTagToken:
			depth--
		}
	}
	return b.String()
}

// joinItem assembles an item's text. Denested lines follow the leading text
// on new lines; text after the nested list goes on a line of its own.
func joinItem(lead string, nested []string, tail string, denested bool) string {
	if !denested {
		return lead
	}

	var b strings.Builder
	if strings.Trim(lead, asciiSpace) != "" {
		b.WriteString(lead)
		b.WriteString(LineBreak)
	}
	b.WriteString(strings.Join(nested, LineBreak))
	if strings.Trim(tail, asciiSpace) != "" {
		b.WriteString(LineBreak)
		b.WriteString(tail)
	}
	return b.String()
}

// renderList writes one top-level list as numbered paragraphs followed by two
// separator paragraphs.
func renderList(entries []listEntry, numID int, listStyle string) string {
	var b strings.Builder
	for _, e := range entries {
		if !e.item {
			if strings.Trim(e.text, asciiSpace) != "" {
				b.WriteString(e.text)
			}
			continue
		}
		b.WriteString(listParagraph(listStyle, numID))
		b.WriteString(strings.Trim(e.text, asciiSpace))
	}
	b.WriteString(Boundary)
	b.WriteString(Boundary)
	return listNewlines.ReplaceAllLiteralString(b.String(), " ")
}

// listParagraph opens a paragraph carrying a numbering reference.
func listParagraph(listStyle string, numID int) string {
	return fmt.Sprintf(
		"%s<w:p><w:pPr>%s<w:numPr><w:ilvl w:val='0'/><w:numId w:val='%d'/></w:numPr></w:pPr><w:r>%s",
		ParagraphClose, styleReference(listStyle), numID, preservedTextTag,
	)
}
