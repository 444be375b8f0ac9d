package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2speech [convert] <input> [flags]")
	fmt.Fprintln(w, "       md2speech <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown files to speech-ready text (default)")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2speech help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2speech [convert] <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown to text suited for a speech synthesizer.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w, "           Files ending in .xz are decompressed first")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, or directory for a directory input")
	fmt.Fprintln(w, "                            (default: output.txt for a single file)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (.yaml, .yml, .toml)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --html                Write the intermediate HTML beside each output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Speech:")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: plain, ssml (default plain)")
	fmt.Fprintln(w, "      --code-blocks <s>     Code blocks: read, skip, announce (default read)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing and debug logs")
	fmt.Fprintln(w, "      --log-format <s>      Log format: auto, text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SPEECH_CONFIG, MD2SPEECH_FORMAT, MD2SPEECH_INPUT_DIR, MD2SPEECH_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MD2SPEECH_CODE_BLOCKS, MD2SPEECH_WORKERS, MD2SPEECH_LOG_LEVEL, MD2SPEECH_LOG_FORMAT")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 general, 2 usage or config, 3 read or write failure")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2speech version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2speech help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
