package html2ooxml

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-html2ooxml/internal/cleaner"
	"github.com/alnah/go-html2ooxml/internal/pipeline"
	"github.com/alnah/go-html2ooxml/internal/stylist"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ Stylist                       = (*stylist.Stylist)(nil)
	_ Cleaner                       = (*cleaner.PolicyCleaner)(nil)
)

// Converter turns HTML or Markdown into WordprocessingML paragraph markup.
// Create with NewConverter. A Converter is safe for concurrent use: all
// per-conversion state, list numbering included, lives in the call.
type Converter struct {
	cfg           converterConfig
	log           *zap.Logger
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	pipeline      *pipeline.Pipeline
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithParagraphStyle, WithSanitizer).
// Returns an error if an option value is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			paragraphStyle: DefaultParagraphStyle,
			listStyle:      DefaultListStyle,
			numberingStart: DefaultNumberingStart,
		},
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	c.log = c.cfg.log
	if c.log == nil {
		c.log = zap.NewNop()
	}

	st := c.cfg.stylist
	if !c.cfg.stylistSet {
		st = stylist.New(c.log)
	}

	c.pipeline = &pipeline.Pipeline{
		ParagraphStyle: c.cfg.paragraphStyle,
		ListStyle:      c.cfg.listStyle,
		Stylist:        st,
		Log:            c.log.Named("pipeline"),
	}

	return c, nil
}

func (cfg *converterConfig) validate() error {
	if err := pipeline.ValidateStyleID(cfg.paragraphStyle); err != nil {
		return fmt.Errorf("paragraph style: %w", err)
	}
	if err := pipeline.ValidateStyleID(cfg.listStyle); err != nil {
		return fmt.Errorf("list style: %w", err)
	}
	if cfg.numberingStart < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidNumberingStart, cfg.numberingStart)
	}
	return nil
}

// Convert runs the full pipeline and returns the fragment with the HTML it
// was built from. The context is checked before each stage that can take
// time; a canceled conversion returns ctx.Err() and no partial result.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	html := input.HTML
	if input.Markdown != "" {
		html, err = c.markdownToHTML(ctx, input.Markdown)
		if err != nil {
			return nil, err
		}
	}

	if c.cfg.cleaner != nil {
		html = c.cfg.cleaner.Clean(html)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := c.cfg.numberingStart
	if input.NumberingStart != 0 {
		start = input.NumberingStart
	}

	res, err := c.pipeline.Run(ctx, html, !input.SkipWrap, pipeline.NewListContext(start))
	if err != nil {
		return nil, err
	}

	return &ConvertResult{
		Fragment:        res.Fragment,
		HTML:            html,
		NextNumberingID: res.Lists.Next,
		Lists:           res.Lists.Lists,
		Diagnostics:     toDiagnostics(res.Diagnostics),
	}, nil
}

// ConvertHTML converts a single HTML fragment with default input settings
// and returns the paragraph markup.
func (c *Converter) ConvertHTML(ctx context.Context, html string) (string, error) {
	res, err := c.Convert(ctx, Input{HTML: html})
	if err != nil {
		return "", err
	}
	return res.Fragment, nil
}

func (c *Converter) markdownToHTML(ctx context.Context, markdown string) (string, error) {
	markdown = c.preprocessor.PreprocessMarkdown(ctx, markdown)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	html, err := c.htmlConverter.ToHTML(ctx, markdown)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	return html, nil
}

func validateInput(input Input) error {
	if input.HTML == "" && input.Markdown == "" {
		return ErrEmptyInput
	}
	if input.HTML != "" && input.Markdown != "" {
		return ErrAmbiguousInput
	}
	if input.NumberingStart < 0 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidNumberingStart, input.NumberingStart)
	}
	return nil
}

// toDiagnostics converts pipeline diagnostics to the public type.
func toDiagnostics(diags []pipeline.Diagnostic) []Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic{
			Kind:        DiagnosticKind(d.Kind),
			Message:     d.Message,
			NumberingID: d.NumberingID,
		}
	}
	return out
}
