package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
		excludes string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
			excludes: "create",
		},
		{
			name:     "local paths only",
			paths:    []string{"foo.yaml", "foo.yml"},
			contains: "--config",
			excludes: "create",
		},
		{
			name:     "with user config path",
			paths:    []string{"foo.yaml", "/home/u/.config/go-html2ooxml/foo.yaml"},
			contains: "create /home/u/.config/go-html2ooxml/foo.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
			if tt.excludes != "" && strings.Contains(hint, tt.excludes) {
				t.Errorf("hint should not contain %q, got %q", tt.excludes, hint)
			}
		})
	}
}

func TestForUnsupportedInput(t *testing.T) {
	t.Parallel()

	if hint := ForUnsupportedInput(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}

	hint := ForUnsupportedInput([]string{".html", ".md"})
	if !strings.Contains(hint, ".html, .md") {
		t.Errorf("expected extension list, got %q", hint)
	}
	if !strings.Contains(hint, "stdin") {
		t.Errorf("expected stdin mention, got %q", hint)
	}
}

func TestForDeepNesting(t *testing.T) {
	t.Parallel()

	hint := ForDeepNesting()
	if strings.Count(hint, "hint:") != 1 {
		t.Errorf("expected one hint prefix, got %q", hint)
	}
	if !strings.Contains(hint, "; ") {
		t.Errorf("expected joined hints, got %q", hint)
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForConfigNotFound(nil),
		ForOutputDirectory(),
		ForUnsupportedInput([]string{".md"}),
		ForStyleID(),
		ForNumbering(),
		ForDeepNesting(),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
