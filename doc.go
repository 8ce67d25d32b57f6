// Package html2ooxml converts HTML fragments into WordprocessingML paragraph
// and run markup for embedding into a generated Word document.
//
// # Quick Start
//
// Create a converter and convert a fragment:
//
//	conv, err := html2ooxml.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, html2ooxml.Input{
//	    HTML: "<p>Hello</p><ul><li>one</li><li>two</li></ul>",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Fragment)
//
// The fragment holds w:p elements only. It has no document root and does
// not define numbering: list paragraphs reference numbering ids that the
// surrounding document must define.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown input is rendered to HTML via Goldmark (GFM, highlighting)
//  2. Optional sanitation with a bluemonday policy (WithSanitizer)
//  3. Wrapping the input in one paragraph (skip with Input.SkipWrap)
//  4. Paragraph and line-break splitting
//  5. List flattening and numbering assignment
//  6. Inline formatting to run and paragraph properties
//  7. Trimming empty paragraphs at the edges
//  8. Whitespace normalization
//  9. Default paragraph style injection
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := html2ooxml.NewConverter(
//	    html2ooxml.WithParagraphStyle("BodyText"),
//	    html2ooxml.WithListStyle("ListBullet"),
//	    html2ooxml.WithNumberingStart(10),
//	    html2ooxml.WithSanitizer(),
//	    html2ooxml.WithLogger(logger),
//	)
//
// # List Numbering
//
// Every top-level list receives its own numbering id, counting up from the
// start value. Conversions do not share a counter: to continue numbering
// across calls, pass the previous ConvertResult.NextNumberingID as
// Input.NumberingStart.
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. For batch work with a bounded
// number of workers, use ConverterPool:
//
//	pool, err := html2ooxml.NewConverterPool(html2ooxml.ResolvePoolSize(0))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(conv)
//
// # Error Handling
//
// Errors can be checked with errors.Is:
//
//	if errors.Is(err, html2ooxml.ErrEmptyInput) { ... }
//	if errors.Is(err, html2ooxml.ErrInvalidStyleID) { ... }
//
// Inputs the converter cannot render faithfully, such as lists nested more
// than one level deep, are not errors. They are reported in
// ConvertResult.Diagnostics.
package html2ooxml
