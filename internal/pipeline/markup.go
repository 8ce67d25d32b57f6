package pipeline

import (
	"errors"
	"fmt"
	"regexp"
)

// WordprocessingML markers shared by the stages.
const (
	// ParagraphOpen opens a paragraph with one text run.
	ParagraphOpen = "<w:p><w:r><w:t>"

	// ParagraphClose closes the text run and paragraph opened by ParagraphOpen.
	ParagraphClose = "</w:t></w:r></w:p>"

	// Boundary ends the current paragraph and starts the next one.
	Boundary = ParagraphClose + ParagraphOpen

	// LineBreak breaks the line without leaving the paragraph.
	LineBreak = "</w:t></w:r><w:r><w:br/><w:t>"

	paragraphTag     = "<w:p>"
	paragraphEndTag  = "</w:p>"
	propertiesTag    = "<w:pPr>"
	propertiesEndTag = "</w:pPr>"
	textTag          = "<w:t>"
	preservedTextTag = "<w:t xml:space='preserve'>"
)

// Default style identifiers.
const (
	DefaultParagraphStyle = "OurStyle2"
	DefaultListStyle      = "ListParagraph"
)

// maxStyleIDLength bounds style identifiers (Word rejects longer names).
const maxStyleIDLength = 253

// ErrInvalidStyleID indicates a style identifier unusable in an attribute value.
var ErrInvalidStyleID = errors.New("invalid style identifier")

var styleIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.\-]*$`)

// ValidateStyleID checks that id can be written into a w:val attribute as-is.
func ValidateStyleID(id string) error {
	if len(id) > maxStyleIDLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidStyleID, len(id), maxStyleIDLength)
	}
	if !styleIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidStyleID, id)
	}
	return nil
}

// styleReference renders a w:pStyle element.
func styleReference(id string) string {
	return "<w:pStyle w:val='" + id + "'/>"
}
