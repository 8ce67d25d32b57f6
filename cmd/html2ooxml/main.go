package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// A first argument that is not a command is treated as "convert" input.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		cmd, rest = "convert", args[1:]
	}

	switch cmd {
	case "convert":
		ctx, stop := notifyContext(context.Background())
		defer stop()

		err := runConvertCmd(ctx, rest, env)
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		if err != nil {
			fmt.Fprintln(env.Stderr, formatError(err))
		}
		return exitCodeFor(err)
	case "version":
		fmt.Fprintf(env.Stdout, "html2ooxml %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	}

	return ExitUsage
}

// isCommand reports whether name is a subcommand.
func isCommand(name string) bool {
	switch name {
	case "convert", "version", "help":
		return true
	}
	return false
}
