package stylist

import (
	"strconv"
	"strings"
)

// RunProps are character-level properties rendered as w:rPr.
type RunProps struct {
	Font       string
	Bold       bool
	Italic     bool
	Strike     bool
	Color      string // RRGGBB
	HalfPoints int
	Underline  bool
	Highlight  string // highlight color name
	Fill       string // RRGGBB shading
	VertAlign  string // "superscript" or "subscript"
}

// IsZero reports whether no property is set.
func (r RunProps) IsZero() bool {
	return r == RunProps{}
}

// Merge returns r overridden by every property set in o.
func (r RunProps) Merge(o RunProps) RunProps {
	if o.Font != "" {
		r.Font = o.Font
	}
	r.Bold = r.Bold || o.Bold
	r.Italic = r.Italic || o.Italic
	r.Strike = r.Strike || o.Strike
	if o.Color != "" {
		r.Color = o.Color
	}
	if o.HalfPoints > 0 {
		r.HalfPoints = o.HalfPoints
	}
	r.Underline = r.Underline || o.Underline
	if o.Highlight != "" {
		r.Highlight = o.Highlight
	}
	if o.Fill != "" {
		r.Fill = o.Fill
	}
	if o.VertAlign != "" {
		r.VertAlign = o.VertAlign
	}
	return r
}

// XML renders the properties in schema order, or "" when none are set.
func (r RunProps) XML() string {
	if r.IsZero() {
		return ""
	}

	var b strings.Builder
	b.WriteString("<w:rPr>")
	if r.Font != "" {
		f := escapeAttr(r.Font)
		b.WriteString("<w:rFonts w:ascii='" + f + "' w:hAnsi='" + f + "' w:cs='" + f + "'/>")
	}
	if r.Bold {
		b.WriteString("<w:b/>")
	}
	if r.Italic {
		b.WriteString("<w:i/>")
	}
	if r.Strike {
		b.WriteString("<w:strike/>")
	}
	if r.Color != "" {
		b.WriteString("<w:color w:val='" + r.Color + "'/>")
	}
	if r.HalfPoints > 0 {
		sz := strconv.Itoa(r.HalfPoints)
		b.WriteString("<w:sz w:val='" + sz + "'/><w:szCs w:val='" + sz + "'/>")
	}
	if r.Highlight != "" {
		b.WriteString("<w:highlight w:val='" + r.Highlight + "'/>")
	}
	if r.Underline {
		b.WriteString("<w:u w:val='single'/>")
	}
	if r.Fill != "" {
		b.WriteString("<w:shd w:val='clear' w:color='auto' w:fill='" + r.Fill + "'/>")
	}
	if r.VertAlign != "" {
		b.WriteString("<w:vertAlign w:val='" + r.VertAlign + "'/>")
	}
	b.WriteString("</w:rPr>")
	return b.String()
}

// ParagraphProps are paragraph-level properties rendered inside w:pPr.
type ParagraphProps struct {
	Style      string
	IndentLeft int // twips
	FirstLine  int // twips
	Align      string
}

// IsZero reports whether no property is set.
func (p ParagraphProps) IsZero() bool {
	return p == ParagraphProps{}
}

// XML renders a w:pPr block, or "" when no property is set.
func (p ParagraphProps) XML() string {
	if p.IsZero() {
		return ""
	}

	var b strings.Builder
	b.WriteString("<w:pPr>")
	if p.Style != "" {
		b.WriteString("<w:pStyle w:val='" + p.Style + "'/>")
	}
	if p.IndentLeft > 0 || p.FirstLine > 0 {
		b.WriteString("<w:ind")
		if p.IndentLeft > 0 {
			b.WriteString(" w:left='" + strconv.Itoa(p.IndentLeft) + "'")
		}
		if p.FirstLine > 0 {
			b.WriteString(" w:firstLine='" + strconv.Itoa(p.FirstLine) + "'")
		}
		b.WriteString("/>")
	}
	if p.Align != "" {
		b.WriteString("<w:jc w:val='" + p.Align + "'/>")
	}
	b.WriteString("</w:pPr>")
	return b.String()
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// Merge returns p overridden by every property set in o.
func (p ParagraphProps) Merge(o ParagraphProps) ParagraphProps {
	if o.Style != "" {
		p.Style = o.Style
	}
	if o.IndentLeft > 0 {
		p.IndentLeft = o.IndentLeft
	}
	if o.FirstLine > 0 {
		p.FirstLine = o.FirstLine
	}
	if o.Align != "" {
		p.Align = o.Align
	}
	return p
}
