package main

// Notes:
// - Shared test infrastructure: an in-memory Environment and file helpers.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv is an Environment backed by buffers and a fixed variable set.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(stdin string, vars map[string]string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Stdin:  strings.NewReader(stdin),
			Stdout: stdout,
			Stderr: stderr,
			Getenv: func(name string) string { return vars[name] },
			Environ: func() []string {
				out := make([]string, 0, len(vars))
				for k, v := range vars {
					out = append(out, k+"="+v)
				}
				return out
			},
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// writeFile creates path under dir with content, making parent directories.
func writeFile(t *testing.T, dir, path, content string) string {
	t.Helper()

	full := filepath.Join(dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return full
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}
