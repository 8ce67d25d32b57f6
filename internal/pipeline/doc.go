// Package pipeline implements the HTML-to-WordprocessingML conversion pipeline.
//
// The core stages run in a fixed order, each one a whole-fragment transform
// whose output shape is the precondition of the next:
//   - Wrap: optional paragraph/run shell around bare input
//   - SplitBreaks: </p> and <br> become paragraph boundaries
//   - FlattenLists: ul/ol/li become numbered paragraphs (one level of denesting)
//   - Stylist: inline style markup becomes paragraph/run properties (collaborator)
//   - TrimBoundaries: empty paragraphs at the fragment edges are dropped
//   - NormalizeSpaces: insignificant whitespace collapses, runs preserve spaces
//   - InjectStyle: every paragraph gets a style reference
//
// The Markdown source stage (GoldmarkConverter, CommonMarkPreprocessor) runs
// before the core and produces the HTML the core consumes.
//
// Only FlattenLists carries state between calls, and that state is an explicit
// ListContext value passed in and returned. Nothing in this package keeps
// hidden counters, so a Pipeline is safe for concurrent use.
package pipeline
