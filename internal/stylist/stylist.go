// Package stylist turns inline HTML formatting left in a paragraph/run
// fragment into WordprocessingML paragraph and run properties.
package stylist

import (
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/alnah/go-html2ooxml/internal/pipeline"
)

// Compile-time interface check.
var _ pipeline.Stylist = (*Stylist)(nil)

// CodeFont is the run font for code, kbd, samp and tt.
const CodeFont = "Courier New"

const runEnd = "</w:t></w:r>"

// Stylist converts formatting elements and style attributes.
//
// Inline elements (strong, em, u, s, sub, sup, code, mark, span...) become run
// properties and are removed. Block openers (p, div, h1-h6) become paragraph
// properties: at the start of a paragraph they are absorbed into it, elsewhere
// they start a new paragraph. Closing div and heading tags end the paragraph.
// Any other markup, pre, textarea and script included, passes through.
//
// A Stylist holds no per-call state and is safe for concurrent use.
type Stylist struct {
	log *zap.Logger
}

// New creates a Stylist. A nil logger disables logging.
func New(log *zap.Logger) *Stylist {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stylist{log: log.Named("stylist")}
}

// ApplyProperties converts fragment[offset:]. Markup before offset is copied
// as-is and only read to learn the paragraph state at offset. It returns the
// converted fragment and its length, the offset where processing ended.
func (s *Stylist) ApplyProperties(fragment string, offset int) (string, int) {
	offset = max(0, min(offset, len(fragment)))

	w := &writer{log: s.log, out: make([]byte, 0, len(fragment)+len(fragment)/4)}
	z := html.NewTokenizer(strings.NewReader(fragment))
	pos := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		// Raw must be copied before TagName, which lowercases the buffer in place.
		raw := string(z.Raw())
		w.token(z, tt, raw, pos >= offset)
		pos += len(raw)
	}

	s.log.Debug("properties applied",
		zap.Int("paragraphs", w.paragraphs),
		zap.Int("runs", w.runs))

	return string(w.out), len(w.out)
}

// frame is an open formatting element.
type frame struct {
	name string
	run  RunProps
	para ParagraphProps
}

type paragraphState struct {
	open  bool
	fresh bool // nothing but whitespace written since the paragraph opened
	// foreign paragraphs carry properties written upstream (list paragraphs);
	// they are never rewritten.
	foreign bool
	pPrAt   int
	pPrLen  int
	props   ParagraphProps
}

type runState struct {
	inText bool
	textAt int
	rPrAt  int
	rPrLen int
	props  RunProps
}

// writer holds the state of one ApplyProperties call.
type writer struct {
	log   *zap.Logger
	out   []byte
	stack []frame
	para  paragraphState
	run   runState

	paragraphs int
	runs       int
}

func (w *writer) token(z *html.Tokenizer, tt html.TokenType, raw string, convert bool) {
	switch tt {
	case html.TextToken:
		w.text(raw, convert)
	case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
		name, hasAttr := z.TagName()
		tag := string(name)
		if strings.HasPrefix(tag, "w:") {
			w.shell(tt, tag, raw)
			return
		}
		if !convert {
			w.write(raw)
			return
		}
		style := ""
		if hasAttr {
			style = styleAttr(z)
		}
		w.element(tt, tag, style, raw)
	default:
		w.write(raw)
	}
}

func (w *writer) text(raw string, convert bool) {
	if strings.TrimSpace(raw) == "" {
		w.write(raw)
		return
	}
	if convert && !w.para.open {
		w.openParagraph()
	}
	w.para.fresh = false
	w.write(raw)
}

// shell tracks the paragraph, run and text tags produced by earlier stages.
func (w *writer) shell(tt html.TokenType, tag, raw string) {
	switch {
	case tt == html.StartTagToken && tag == "w:p":
		w.write(raw)
		w.beginParagraph()
	case tt == html.StartTagToken && tag == "w:ppr":
		if w.para.open {
			w.splice(w.para.pPrAt, w.para.pPrLen, "")
			w.para.pPrLen = 0
			w.para.foreign = true
		}
		w.write(raw)
	case tt == html.EndTagToken && tag == "w:p":
		w.write(raw)
		w.endParagraph()
	case tt == html.StartTagToken && tag == "w:r":
		w.write(raw)
		w.beginRun()
	case tt == html.StartTagToken && tag == "w:t":
		w.write(raw)
		w.run.inText = true
		w.run.textAt = len(w.out)
	case tt == html.EndTagToken && tag == "w:t":
		w.run.inText = false
		w.write(raw)
	case tag == "w:br":
		w.write(raw)
		w.para.fresh = false
	default:
		w.write(raw)
	}
}

func (w *writer) element(tt html.TokenType, tag, style, raw string) {
	switch {
	case isBlock(tag):
		switch tt {
		case html.StartTagToken:
			w.openBlock(tag, style)
		case html.EndTagToken:
			w.closeBlock(tag)
		}
	case isInline(tag):
		switch tt {
		case html.StartTagToken:
			run, _ := w.properties(tag, style)
			w.stack = append(w.stack, frame{name: tag, run: inlineProps[tag].Merge(run)})
			w.switchRun()
		case html.EndTagToken:
			if w.pop(tag) {
				w.switchRun()
			}
		}
	default:
		if tt != html.EndTagToken {
			if !w.para.open {
				w.openParagraph()
			}
			w.para.fresh = false
		}
		w.write(raw)
	}
}

func (w *writer) openBlock(tag, style string) {
	run, para := w.properties(tag, style)
	if level, ok := headingLevel(tag); ok {
		para = ParagraphProps{Style: "Heading" + level}.Merge(para)
	}
	f := frame{name: tag, run: run, para: para}

	switch {
	case w.para.open && w.run.inText && w.para.fresh:
		w.stack = append(w.stack, f)
		w.setParagraphProps(w.activeParagraph())
		w.switchRun()
	case w.para.open && w.run.inText:
		w.closeParagraph()
		w.stack = append(w.stack, f)
		w.openParagraph()
	case w.para.open:
		// Between shell tags: the next run picks the properties up.
		w.stack = append(w.stack, f)
	default:
		w.stack = append(w.stack, f)
		w.openParagraph()
	}
}

func (w *writer) closeBlock(tag string) {
	if !w.pop(tag) {
		return
	}
	if !w.para.open || !w.run.inText {
		return
	}
	if w.para.fresh {
		w.setParagraphProps(w.activeParagraph())
		w.switchRun()
		return
	}
	w.closeParagraph()
	w.openParagraph()
}

func (w *writer) openParagraph() {
	w.write("<w:p>")
	w.beginParagraph()
	w.write("<w:r>")
	w.beginRun()
	w.write("<w:t>")
	w.run.inText = true
	w.run.textAt = len(w.out)
}

func (w *writer) closeParagraph() {
	w.write(pipeline.ParagraphClose)
	w.endParagraph()
}

func (w *writer) beginParagraph() {
	w.para = paragraphState{open: true, fresh: true, pPrAt: len(w.out)}
	w.paragraphs++
	w.setParagraphProps(w.activeParagraph())
}

// endParagraph closes the paragraph and the p elements scoped to it.
func (w *writer) endParagraph() {
	w.para.open = false
	w.run.inText = false
	w.stack = slices.DeleteFunc(w.stack, func(f frame) bool { return f.name == "p" })
}

func (w *writer) beginRun() {
	w.run = runState{rPrAt: len(w.out)}
	w.runs++
	w.setRunProps(w.activeRun())
}

func (w *writer) setParagraphProps(p ParagraphProps) {
	if w.para.foreign {
		return
	}
	x := p.XML()
	w.splice(w.para.pPrAt, w.para.pPrLen, x)
	w.para.pPrLen = len(x)
	w.para.props = p
}

func (w *writer) setRunProps(r RunProps) {
	x := r.XML()
	w.splice(w.run.rPrAt, w.run.rPrLen, x)
	w.run.rPrLen = len(x)
	w.run.props = r
}

// switchRun makes the open text run carry the active properties. A run with
// no text yet is rewritten in place; otherwise a new run is started.
func (w *writer) switchRun() {
	if !w.para.open || !w.run.inText {
		return
	}
	next := w.activeRun()
	if next == w.run.props {
		return
	}
	if strings.TrimSpace(string(w.out[w.run.textAt:])) == "" {
		w.setRunProps(next)
		return
	}
	w.write(runEnd + "<w:r>")
	w.beginRun()
	w.write("<w:t>")
	w.run.inText = true
	w.run.textAt = len(w.out)
}

func (w *writer) activeRun() RunProps {
	var r RunProps
	for _, f := range w.stack {
		r = r.Merge(f.run)
	}
	return r
}

func (w *writer) activeParagraph() ParagraphProps {
	var p ParagraphProps
	for _, f := range w.stack {
		p = p.Merge(f.para)
	}
	return p
}

// pop removes the innermost open element named tag. It reports false when
// no such element is open.
func (w *writer) pop(tag string) bool {
	for i := len(w.stack) - 1; i >= 0; i-- {
		if w.stack[i].name == tag {
			w.stack = slices.Delete(w.stack, i, i+1)
			return true
		}
	}
	return false
}

func (w *writer) write(s string) {
	w.out = append(w.out, s...)
}

// splice replaces n bytes at at with s and moves the recorded positions
// that follow.
func (w *writer) splice(at, n int, s string) {
	if n == 0 && s == "" {
		return
	}
	tail := slices.Clone(w.out[at+n:])
	w.out = append(append(w.out[:at], s...), tail...)

	delta := len(s) - n
	for _, p := range []*int{&w.para.pPrAt, &w.run.rPrAt, &w.run.textAt} {
		if *p > at {
			*p += delta
		}
	}
}

// properties converts a style attribute into run and paragraph properties.
func (w *writer) properties(tag, style string) (RunProps, ParagraphProps) {
	var run RunProps
	var para ParagraphProps
	if style == "" {
		return run, para
	}

	for _, d := range parseDeclarations(style) {
		ok := true
		switch d.property {
		case "color":
			run.Color, ok = parseColor(d.value)
		case "background-color", "background":
			run.Fill, ok = parseColor(d.value)
		case "font-weight":
			run.Bold = isBoldWeight(d.value)
		case "font-style":
			v := strings.ToLower(d.value)
			run.Italic = v == "italic" || v == "oblique"
		case "text-decoration", "text-decoration-line":
			v := strings.ToLower(d.value)
			run.Underline = strings.Contains(v, "underline")
			run.Strike = strings.Contains(v, "line-through")
		case "font-size":
			var pt float64
			if pt, ok = parseLength(d.value); ok {
				run.HalfPoints = halfPoints(pt)
			}
		case "font-family":
			run.Font = firstFontFamily(d.value)
			ok = run.Font != ""
		case "vertical-align":
			switch strings.ToLower(d.value) {
			case "super":
				run.VertAlign = "superscript"
			case "sub":
				run.VertAlign = "subscript"
			default:
				ok = false
			}
		case "text-align":
			para.Align, ok = alignments[strings.ToLower(d.value)]
		case "margin-left", "padding-left":
			var pt float64
			if pt, ok = parseLength(d.value); ok {
				para.IndentLeft = twips(pt)
			}
		case "text-indent":
			var pt float64
			if pt, ok = parseLength(d.value); ok {
				para.FirstLine = twips(pt)
			}
		default:
			w.log.Debug("unsupported style property",
				zap.String("element", tag),
				zap.String("property", d.property))
			continue
		}
		if !ok {
			w.log.Debug("unsupported style value",
				zap.String("element", tag),
				zap.String("property", d.property),
				zap.String("value", d.value))
		}
	}
	return run, para
}

// Run properties implied by inline element names.
var inlineProps = map[string]RunProps{
	"strong": {Bold: true},
	"b":      {Bold: true},
	"em":     {Italic: true},
	"i":      {Italic: true},
	"u":      {Underline: true},
	"ins":    {Underline: true},
	"s":      {Strike: true},
	"strike": {Strike: true},
	"del":    {Strike: true},
	"sub":    {VertAlign: "subscript"},
	"sup":    {VertAlign: "superscript"},
	"code":   {Font: CodeFont},
	"kbd":    {Font: CodeFont},
	"samp":   {Font: CodeFont},
	"tt":     {Font: CodeFont},
	"mark":   {Highlight: "yellow"},
	"span":   {},
}

func isInline(tag string) bool {
	_, ok := inlineProps[tag]
	return ok
}

func isBlock(tag string) bool {
	if tag == "p" || tag == "div" {
		return true
	}
	_, ok := headingLevel(tag)
	return ok
}

// headingLevel returns "1".."6" for h1..h6.
func headingLevel(tag string) (string, bool) {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return tag[1:], true
	}
	return "", false
}

func styleAttr(z *html.Tokenizer) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "style" {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}
