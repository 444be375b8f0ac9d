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
	// The resulting value is logged at debug level by runConvert.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// Without a known command name the arguments are treated as "convert".
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[1] {
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2speech %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(args[2:], env)
		return ExitSuccess
	case "completion":
		return report(runCompletion(args[2:], env), env)
	}

	convertArgs := args[1:]
	if args[1] == "convert" {
		convertArgs = args[2:]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return report(runConvert(ctx, convertArgs, env), env)
}

// report prints err with its hint and maps it to an exit code.
func report(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	var batch *batchError
	if errors.As(err, &batch) {
		// Per-file failures and their hints were already printed.
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	} else {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}
