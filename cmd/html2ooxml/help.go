package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2ooxml <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert HTML or Markdown to WordprocessingML paragraphs")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2ooxml help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2ooxml convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML or Markdown files to WordprocessingML paragraph fragments (.xml).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory, or - for stdin (optional if config has input.defaultDir)")
	fmt.Fprintln(w, "           Extensions: .html, .htm, .xhtml, .md, .markdown")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>            Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>            Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>              Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --html                     Also write the converted HTML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styles:")
	fmt.Fprintln(w, "      --paragraph-style <id>     Style ID for body paragraphs (default OurStyle2)")
	fmt.Fprintln(w, "      --list-style <id>          Style ID for list items (default ListParagraph)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Numbering:")
	fmt.Fprintln(w, "  -n, --numbering-start <n>      Numbering ID of the first list (default 1)")
	fmt.Fprintln(w, "      --continue-numbering       Continue IDs across files (forces one worker)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --skip-wrap                Input already has block structure")
	fmt.Fprintln(w, "      --no-sanitize              Do not clean HTML input")
	fmt.Fprintln(w, "      --no-inline-styles         Leave inline formatting markup untouched")
	fmt.Fprintln(w, "      --markdown                 Treat stdin as Markdown")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                    Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                  Show debug logging and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2OOXML_CONFIG, HTML2OOXML_INPUT_DIR, HTML2OOXML_OUTPUT_DIR,")
	fmt.Fprintln(w, "  HTML2OOXML_PARAGRAPH_STYLE, HTML2OOXML_LIST_STYLE,")
	fmt.Fprintln(w, "  HTML2OOXML_NUMBERING_START, HTML2OOXML_WORKERS, HTML2OOXML_LOG_LEVEL")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2ooxml version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2ooxml help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
