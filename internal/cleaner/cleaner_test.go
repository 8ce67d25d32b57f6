package cleaner

import (
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"
)

func TestPolicyCleaner_Clean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "structure kept",
			input:        "<p>a<br/>b</p><ul><li>c</li></ul>",
			wantContains: []string{"<p>", "<br/>", "</p>", "<ul>", "<li>c</li>", "</ul>"},
		},
		{
			name:         "formatting kept",
			input:        "<strong>a</strong><em>b</em><u>c</u><del>d</del><sup>e</sup><code>f</code>",
			wantContains: []string{"<strong>a</strong>", "<em>b</em>", "<u>c</u>", "<del>d</del>", "<sup>e</sup>", "<code>f</code>"},
		},
		{
			name:    "script removed with its content",
			input:   "a<script>alert(1)</script>b",
			wantNot: []string{"<script", "alert"},
		},
		{
			name:         "unknown element stripped, text kept",
			input:        "<table><tr><td>cell</td></tr></table>",
			wantContains: []string{"cell"},
			wantNot:      []string{"<table", "<td"},
		},
		{
			name:         "event handler removed",
			input:        `<p onclick="x()">a</p>`,
			wantContains: []string{"<p>a</p>"},
			wantNot:      []string{"onclick"},
		},
		{
			name:         "supported style kept",
			input:        `<span style="color: red">a</span>`,
			wantContains: []string{"<span", "color", "red"},
		},
		{
			name:    "unsupported style dropped",
			input:   `<span style="position: absolute">a</span>`,
			wantNot: []string{"position"},
		},
		{
			name:         "alignment on paragraphs",
			input:        `<p style="text-align: center">a</p>`,
			wantContains: []string{"text-align", "center"},
		},
	}

	c := NewPolicyCleaner()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Clean(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Clean(%q) = %q, missing %q", tt.input, got, want)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("Clean(%q) = %q, should not contain %q", tt.input, got, not)
				}
			}
		})
	}
}

func TestNewCleaner_CustomPolicy(t *testing.T) {
	t.Parallel()

	c := NewCleaner(bluemonday.StrictPolicy())
	if got := c.Clean("<p>a</p>"); got != "a" {
		t.Errorf("Clean() = %q, want %q", got, "a")
	}
}
