package pipeline

// Wrap encloses the whole fragment in a single paragraph/run shell.
// When enabled is false the caller supplies block structure and the fragment
// is returned unchanged.
func Wrap(fragment string, enabled bool) string {
	if !enabled {
		return fragment
	}
	return ParagraphOpen + fragment + ParagraphClose
}
