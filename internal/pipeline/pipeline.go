package pipeline

import (
	"context"

	"go.uber.org/zap"
)

// Stylist converts inline style markup in a paragraph/run shaped fragment into
// paragraph and run properties. It processes the fragment from offset onward
// and returns the new fragment with the offset where processing ended.
type Stylist interface {
	ApplyProperties(fragment string, offset int) (string, int)
}

// Pipeline runs the conversion stages in order.
// The zero value uses the default styles, no stylist and a no-op logger.
type Pipeline struct {
	ParagraphStyle string
	ListStyle      string
	Stylist        Stylist
	Log            *zap.Logger
}

// Result is the outcome of one pipeline run.
type Result struct {
	Fragment    string
	Lists       ListContext
	Diagnostics []Diagnostic
}

// Run converts one HTML fragment. lists supplies the numbering id for the
// first list; the returned Result.Lists holds the id for the next call.
// The context is checked once before any stage runs; stages never block.
func (p *Pipeline) Run(ctx context.Context, fragment string, wrap bool, lists ListContext) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := p.logger()

	fragment = Wrap(fragment, wrap)
	fragment = SplitBreaks(fragment)

	fragment, lists, diags := FlattenLists(fragment, lists, p.listStyle())
	for _, d := range diags {
		log.Warn(d.Message, zap.String("kind", string(d.Kind)), zap.Int("numId", d.NumberingID))
	}

	if p.Stylist != nil {
		fragment, _ = p.Stylist.ApplyProperties(fragment, 0)
	}

	fragment = TrimBoundaries(fragment)
	fragment = NormalizeSpaces(fragment)
	fragment = InjectStyle(fragment, p.paragraphStyle())

	log.Debug("fragment converted",
		zap.Int("lists", lists.Lists),
		zap.Int("nextNumId", lists.Next),
		zap.Int("bytes", len(fragment)))

	return &Result{Fragment: fragment, Lists: lists, Diagnostics: diags}, nil
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

func (p *Pipeline) paragraphStyle() string {
	if p.ParagraphStyle == "" {
		return DefaultParagraphStyle
	}
	return p.ParagraphStyle
}

func (p *Pipeline) listStyle() string {
	if p.ListStyle == "" {
		return DefaultListStyle
	}
	return p.ListStyle
}
