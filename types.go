package html2ooxml

import (
	"go.uber.org/zap"

	"github.com/alnah/go-html2ooxml/internal/cleaner"
	"github.com/alnah/go-html2ooxml/internal/pipeline"
)

// Default style identifiers written into the fragment.
const (
	DefaultParagraphStyle = pipeline.DefaultParagraphStyle
	DefaultListStyle      = pipeline.DefaultListStyle
)

// DefaultNumberingStart is the numbering id of the first list when neither
// the converter nor the input sets one.
const DefaultNumberingStart = 1

// Input contains conversion parameters. Exactly one of HTML and Markdown
// must be set.
type Input struct {
	HTML     string // HTML fragment
	Markdown string // Markdown source, rendered to HTML first

	// SkipWrap disables wrapping the input in a paragraph. Set it when the
	// HTML already supplies block structure (p, br, lists).
	SkipWrap bool

	// NumberingStart overrides the converter's numbering id for the first
	// list. Zero keeps the converter's value.
	NumberingStart int
}

// ConvertResult is the outcome of one conversion.
type ConvertResult struct {
	Fragment string // paragraph/run markup, no document root
	HTML     string // HTML that entered the pipeline, after rendering and cleaning

	// NextNumberingID is the id the next list would receive. Pass it as
	// Input.NumberingStart to continue numbering in a later conversion.
	NextNumberingID int

	// Lists is the number of top-level lists converted.
	Lists int

	Diagnostics []Diagnostic
}

// DiagnosticKind classifies a non-fatal conversion problem.
type DiagnosticKind string

// DiagnosticDeepNesting reports a list nested two or more levels deep. Its
// markup is kept verbatim inside the item text.
const DiagnosticDeepNesting = DiagnosticKind(pipeline.DiagnosticDeepNesting)

// Diagnostic describes input that converted without error but not faithfully.
type Diagnostic struct {
	Kind        DiagnosticKind
	Message     string
	NumberingID int // numbering id of the list involved
}

// Cleaner sanitizes HTML before conversion.
type Cleaner interface {
	Clean(html string) string
}

// Stylist turns inline formatting markup into paragraph and run properties.
// It processes fragment[offset:] and returns the new fragment and the offset
// where processing ended.
type Stylist interface {
	ApplyProperties(fragment string, offset int) (string, int)
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	paragraphStyle string
	listStyle      string
	numberingStart int
	log            *zap.Logger
	cleaner        Cleaner
	stylist        Stylist
	stylistSet     bool
}

// WithParagraphStyle sets the style referenced by paragraphs that name none.
func WithParagraphStyle(id string) Option {
	return func(c *Converter) {
		c.cfg.paragraphStyle = id
	}
}

// WithListStyle sets the style referenced by list item paragraphs.
func WithListStyle(id string) Option {
	return func(c *Converter) {
		c.cfg.listStyle = id
	}
}

// WithNumberingStart sets the numbering id of the first list in each
// conversion. It must be at least 1.
func WithNumberingStart(n int) Option {
	return func(c *Converter) {
		c.cfg.numberingStart = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		c.cfg.log = log
	}
}

// WithCleaner sanitizes HTML input with cl before conversion.
func WithCleaner(cl Cleaner) Option {
	return func(c *Converter) {
		c.cfg.cleaner = cl
	}
}

// WithSanitizer sanitizes HTML input with the default bluemonday policy.
func WithSanitizer() Option {
	return WithCleaner(cleaner.NewPolicyCleaner())
}

// WithStylist replaces the default stylist. A nil stylist leaves inline
// formatting markup in place.
func WithStylist(s Stylist) Option {
	return func(c *Converter) {
		c.cfg.stylist = s
		c.cfg.stylistSet = true
	}
}
