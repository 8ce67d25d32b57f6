package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds style identifier flags.
type styleFlags struct {
	paragraph string
	list      string
}

// numberingFlags holds list numbering flags.
type numberingFlags struct {
	start     int
	continues bool
}

// conversionFlags holds pipeline toggles.
type conversionFlags struct {
	skipWrap       bool
	noSanitize     bool
	noInlineStyles bool
	markdown       bool // Treat stdin as Markdown
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	html       bool // Write the pipeline HTML alongside each fragment
	styles     styleFlags
	numbering  numberingFlags
	conversion conversionFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging and timing")
}

// addStyleFlags adds style flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.paragraph, "paragraph-style", "", "style ID for body paragraphs")
	fs.StringVar(&f.list, "list-style", "", "style ID for list item paragraphs")
}

// addNumberingFlags adds numbering flags to a FlagSet.
func addNumberingFlags(fs *flag.FlagSet, f *numberingFlags) {
	fs.IntVarP(&f.start, "numbering-start", "n", 0, "numbering ID of the first list (0 = default)")
	fs.BoolVar(&f.continues, "continue-numbering", false, "continue numbering IDs across files")
}

// addConversionFlags adds pipeline toggles to a FlagSet.
func addConversionFlags(fs *flag.FlagSet, f *conversionFlags) {
	fs.BoolVar(&f.skipWrap, "skip-wrap", false, "input already has block structure")
	fs.BoolVar(&f.noSanitize, "no-sanitize", false, "do not clean HTML input")
	fs.BoolVar(&f.noInlineStyles, "no-inline-styles", false, "leave inline formatting markup untouched")
	fs.BoolVar(&f.markdown, "markdown", false, "treat stdin as Markdown")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, env *Environment) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.html, "html", false, "also write the converted HTML")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.styles)
	addNumberingFlags(fs, &f.numbering)
	addConversionFlags(fs, &f.conversion)

	fs.Usage = func() { printConvertUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
