package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: obsidian2org <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert a note or a vault to Org")
	fmt.Fprintln(w, "  watch       Convert a vault and rebuild on changes")
	fmt.Fprintln(w, "  doctor      Check pandoc and the environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'obsidian2org help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: obsidian2org convert <input> [output] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert an Obsidian note or vault to Org files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input     Note (.md) or vault directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w, "  output    Output directory (default: out)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A single note is written as <output>/<name>.org without a property drawer.")
	fmt.Fprintln(w, "A vault is mirrored under <output>; every note gets an :ID: and wiki links")
	fmt.Fprintln(w, "between notes become id: links.")
	fmt.Fprintln(w)
	printConversionFlags(w)
}

// printConversionFlags prints the flags shared by convert and watch.
func printConversionFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (alternative to the second argument)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto, default: 1)")
	fmt.Fprintln(w, "      --pandoc <path>       Pandoc binary name or path")
	fmt.Fprintln(w, "      --keep-ids            Reuse IDs found in existing output files")
	fmt.Fprintln(w, "      --no-tags             Do not write #+filetags:")
	fmt.Fprintln(w, "      --no-attachments      Do not copy non-Markdown files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show every file handled")
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: obsidian2org watch <vault> [output] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a vault, then rebuild it whenever a file changes.")
	fmt.Fprintln(w, "IDs are always kept between rebuilds. Stop with Ctrl-C.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --debounce <d>        Wait after the last change (default: 300ms)")
	fmt.Fprintln(w)
	printConversionFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: obsidian2org doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that pandoc is installed and the environment is usable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print results as JSON")
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
	case "watch":
		printWatchUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: obsidian2org version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: obsidian2org help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
