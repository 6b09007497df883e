package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(maxprocsLogger(env.Stderr, wantsVerbose(os.Args[1:]))))

	os.Exit(runMain(os.Args, env))
}

// maxprocsLogger prints automaxprocs decisions only in verbose mode.
func maxprocsLogger(w io.Writer, verbose bool) func(string, ...interface{}) {
	if !verbose {
		return func(string, ...interface{}) {}
	}
	return func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// wantsVerbose reports whether -v or --verbose appears before a "--" terminator.
// Flags are parsed per command later; this only decides early logging.
func wantsVerbose(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, cmdArgs := args[1], args[2:]

	var err error
	switch cmd {
	case "convert":
		warnUnknownEnvVars(env.Stderr)
		err = runConvertCmd(ctx, cmdArgs, env)
	case "watch":
		warnUnknownEnvVars(env.Stderr)
		err = runWatchCmd(ctx, cmdArgs, env)
	case "doctor":
		return runDoctorCmd(ctx, cmdArgs, env)
	case "completion":
		err = runCompletion(cmdArgs, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "obsidian2org %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(cmdArgs, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
