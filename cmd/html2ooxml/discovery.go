package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	html2ooxml "github.com/alnah/go-html2ooxml"
	"github.com/alnah/go-html2ooxml/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("unsupported input extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoFiles            = errors.New("no HTML or Markdown files found")
)

// stdinPath selects standard input (and standard output unless -o is set).
const stdinPath = "-"

// Input and output extensions.
var (
	htmlExtensions     = []string{".html", ".htm", ".xhtml"}
	markdownExtensions = []string{".md", ".markdown"}
	fragmentExtension  = ".xml"
	htmlOutputSuffix   = ".converted.html"
)

// supportedExtensions lists every accepted input extension.
func supportedExtensions() []string {
	return append(append([]string{}, htmlExtensions...), markdownExtensions...)
}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	Markdown   bool
}

// discoverFiles finds all HTML and Markdown files to convert. Directory
// walks skip other files; a single file must have a supported extension.
// Results are in natural order (ch2 before ch10), which numbering
// continuation relies on.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateInputExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToConvert{newFileToConvert(inputPath, outputDir, "")}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.HasExtension(path, supportedExtensions()...) || isHTMLOutput(path) {
			return nil
		}
		files = append(files, newFileToConvert(path, outputDir, inputPath))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return natural.Less(files[i].InputPath, files[j].InputPath)
	})

	return files, nil
}

func newFileToConvert(path, outputDir, baseInputDir string) FileToConvert {
	return FileToConvert{
		InputPath:  path,
		OutputPath: resolveOutputPath(path, outputDir, baseInputDir),
		Markdown:   isMarkdownPath(path),
	}
}

// resolveOutputPath determines the fragment output path for an input file.
// An outputDir ending in .xml names the output file directly.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+fragmentExtension)
	}

	if strings.HasSuffix(strings.ToLower(outputDir), fragmentExtension) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+fragmentExtension)
		}
	}

	return filepath.Join(outputDir, base+fragmentExtension)
}

// htmlOutputPath returns the HTML path written next to a fragment with --html.
// The extra suffix keeps it from overwriting an HTML input of the same name.
func htmlOutputPath(fragmentPath string) string {
	return strings.TrimSuffix(fragmentPath, filepath.Ext(fragmentPath)) + htmlOutputSuffix
}

// isHTMLOutput reports whether path was written by a previous --html run.
func isHTMLOutput(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), htmlOutputSuffix)
}

// isMarkdownPath reports whether the path names a Markdown file.
func isMarkdownPath(path string) bool {
	return fileutil.HasExtension(path, markdownExtensions...)
}

// validateInputExtension checks that the file has a supported extension.
func validateInputExtension(path string) error {
	if !fileutil.HasExtension(path, supportedExtensions()...) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > html2ooxml.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, html2ooxml.MaxPoolSize)
	}
	return nil
}
