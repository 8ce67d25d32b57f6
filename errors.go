package html2ooxml

import (
	"errors"

	"github.com/alnah/go-html2ooxml/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrAmbiguousInput     = errors.New("input must set either HTML or Markdown, not both")
	ErrMarkdownConversion = errors.New("markdown conversion failed")

	// Option validation errors.
	ErrInvalidStyleID        = pipeline.ErrInvalidStyleID
	ErrInvalidNumberingStart = errors.New("invalid numbering start")

	// Pool errors.
	ErrPoolClosed = errors.New("converter pool is closed")
)
