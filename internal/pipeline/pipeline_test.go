package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return &Pipeline{Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))}
}

// parseFragment reads a fragment as the body of a document.
func parseFragment(t *testing.T, fragment string) *etree.Document {
	t.Helper()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(`<w:body xmlns:w="` + wordNamespace + `">` + fragment + `</w:body>`); err != nil {
		t.Fatalf("fragment is not well-formed XML: %v\n%s", err, fragment)
	}
	return doc
}

func paragraphStyles(doc *etree.Document) []string {
	var styles []string
	for _, p := range doc.FindElements("//w:p") {
		style := ""
		if s := p.FindElement("w:pPr/w:pStyle"); s != nil {
			style = s.SelectAttrValue("w:val", "")
		}
		styles = append(styles, style)
	}
	return styles
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	const (
		styled = "<w:p><w:pPr><w:pStyle w:val='OurStyle2'/></w:pPr><w:r><w:t xml:space='preserve'>"
		end    = "</w:t></w:r></w:p>"
	)

	tests := []struct {
		name     string
		input    string
		wrap     bool
		expected string
	}{
		{
			name:     "plain text wrapped",
			input:    "Hello",
			wrap:     true,
			expected: styled + "Hello" + end,
		},
		{
			name:     "line break splits paragraphs",
			input:    "Hello<br>World",
			wrap:     true,
			expected: styled + "Hello" + end + styled + "World" + end,
		},
		{
			name:     "leading and trailing breaks trimmed",
			input:    "<br><br>Hello<br>",
			wrap:     false,
			expected: styled + "Hello" + end,
		},
		{
			name:     "whitespace collapsed",
			input:    "a   b\n\nc",
			wrap:     true,
			expected: styled + "a b c" + end,
		},
		{
			name:     "unwrapped paragraph",
			input:    "Hello</p>",
			wrap:     false,
			expected: styled + "Hello" + end,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := newTestPipeline(t).Run(context.Background(), tt.input, tt.wrap, NewListContext(1))
			if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}
			if res.Fragment != tt.expected {
				t.Errorf("Run(%q)\n got: %s\nwant: %s", tt.input, res.Fragment, tt.expected)
			}
			parseFragment(t, res.Fragment)
		})
	}
}

func TestPipeline_Run_List(t *testing.T) {
	t.Parallel()

	res, err := newTestPipeline(t).Run(context.Background(), "<ul><li>A</li><li>B</li></ul>", true, NewListContext(1))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	doc := parseFragment(t, res.Fragment)
	styles := paragraphStyles(doc)
	want := []string{DefaultListStyle, DefaultListStyle, DefaultParagraphStyle, DefaultParagraphStyle}
	if strings.Join(styles, ",") != strings.Join(want, ",") {
		t.Errorf("paragraph styles = %v, want %v", styles, want)
	}

	ids := doc.FindElements("//w:numId")
	if len(ids) != 2 {
		t.Fatalf("got %d numbering references, want 2", len(ids))
	}
	for _, id := range ids {
		if v := id.SelectAttrValue("w:val", ""); v != "1" {
			t.Errorf("numId = %q, want 1", v)
		}
	}
	if res.Lists.Next != 2 || res.Lists.Lists != 1 {
		t.Errorf("Lists = %+v, want Next=2 Lists=1", res.Lists)
	}
}

func TestPipeline_Run_SecondListTakesNextID(t *testing.T) {
	t.Parallel()

	res, err := newTestPipeline(t).Run(context.Background(), "<ul><li>A</li></ul><ol><li>B</li></ol>", true, NewListContext(7))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	var got []string
	for _, id := range parseFragment(t, res.Fragment).FindElements("//w:numId") {
		got = append(got, id.SelectAttrValue("w:val", ""))
	}
	if strings.Join(got, ",") != "7,8" {
		t.Errorf("numIds = %v, want [7 8]", got)
	}
	if res.Lists.Next != 9 {
		t.Errorf("Next = %d, want 9", res.Lists.Next)
	}
}

func TestPipeline_Run_Denesting(t *testing.T) {
	t.Parallel()

	res, err := newTestPipeline(t).Run(context.Background(), "<ul><li>X<ul><li>Y</li></ul></li></ul>", true, NewListContext(1))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	want := "X</w:t></w:r><w:r><w:br/><w:t xml:space='preserve'> - Y</w:t>"
	if !strings.Contains(res.Fragment, want) {
		t.Errorf("denested item missing\n got: %s\nwant substring: %s", res.Fragment, want)
	}
	if n := len(parseFragment(t, res.Fragment).FindElements("//w:numId")); n != 1 {
		t.Errorf("got %d numbered paragraphs, want 1", n)
	}
}

func TestPipeline_Run_DeepNestingLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	p := &Pipeline{Log: zap.New(core)}

	res, err := p.Run(context.Background(), "<ul><li>A<ul><li>B<ul><li>C</li></ul></li></ul></li></ul>", true, NewListContext(1))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(res.Diagnostics))
	}
	if n := logs.FilterField(zap.String("kind", string(DiagnosticDeepNesting))).Len(); n != 1 {
		t.Errorf("deep nesting logged %d times, want 1", n)
	}
}

func TestPipeline_Run_PreservesProtectedRegion(t *testing.T) {
	t.Parallel()

	region := "<pre>  a\n\n  b</pre>"
	res, err := newTestPipeline(t).Run(context.Background(), "x  "+region, true, NewListContext(1))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if !strings.Contains(res.Fragment, region) {
		t.Errorf("protected region changed: %s", res.Fragment)
	}
}

func TestPipeline_Run_CustomStyles(t *testing.T) {
	t.Parallel()

	p := &Pipeline{ParagraphStyle: "Body", ListStyle: "Bullets"}
	res, err := p.Run(context.Background(), "a<ul><li>b</li></ul>", true, NewListContext(1))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	styles := paragraphStyles(parseFragment(t, res.Fragment))
	if len(styles) == 0 || styles[0] != "Body" {
		t.Errorf("first paragraph style = %v, want Body", styles)
	}
	if !strings.Contains(res.Fragment, "<w:pStyle w:val='Bullets'/>") {
		t.Errorf("list style missing: %s", res.Fragment)
	}
}

type tagStrippingStylist struct{ calls int }

func (s *tagStrippingStylist) ApplyProperties(fragment string, offset int) (string, int) {
	s.calls++
	out := fragment[:offset] + strings.ReplaceAll(fragment[offset:], "<b>", "")
	out = strings.ReplaceAll(out, "</b>", "")
	return out, len(out)
}

func TestPipeline_Run_UsesStylist(t *testing.T) {
	t.Parallel()

	st := &tagStrippingStylist{}
	p := &Pipeline{Stylist: st}
	res, err := p.Run(context.Background(), "<b>x</b>", true, NewListContext(1))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if st.calls != 1 {
		t.Errorf("stylist called %d times, want 1", st.calls)
	}
	if strings.Contains(res.Fragment, "<b>") {
		t.Errorf("stylist output not used: %s", res.Fragment)
	}
}

func TestPipeline_Run_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := (&Pipeline{}).Run(ctx, "Hello", true, NewListContext(1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if res != nil {
		t.Errorf("Run() result = %+v, want nil", res)
	}
}

func TestPipeline_Run_WellFormed(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Hello",
		"<p>One</p><p>Two</p>",
		"a<br/>b<br />c",
		"<ul><li>A</li><li>B<ol><li>C</li></ol>D</li></ul>tail",
		"<ul></ul>",
		"x&nbsp;y",
	}

	for _, input := range inputs {
		for _, wrap := range []bool{true, false} {
			res, err := newTestPipeline(t).Run(context.Background(), input, wrap, NewListContext(1))
			if err != nil {
				t.Fatalf("Run(%q) unexpected error: %v", input, err)
			}
			if strings.Contains(input, "<p>") {
				// The bare <p> openers are the stylist's job.
				continue
			}
			parseFragment(t, res.Fragment)
		}
	}
}
