package main

import (
	"errors"
	"os"

	html2ooxml "github.com/alnah/go-html2ooxml"
	"github.com/alnah/go-html2ooxml/internal/config"
)

// Exit codes for html2ooxml CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Errors combined with multierr match if any of them does.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, html2ooxml.ErrEmptyInput) ||
		errors.Is(err, html2ooxml.ErrInvalidStyleID) ||
		errors.Is(err, html2ooxml.ErrInvalidNumberingStart) ||
		errors.Is(err, html2ooxml.ErrAmbiguousInput) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteFragment) ||
		errors.Is(err, ErrCreateOutputDir) {
		return ExitIO
	}

	return ExitGeneral
}
