package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// conversionFlags holds flags that tune the converter.
type conversionFlags struct {
	workers       int
	workersSet    bool // --workers given explicitly (0 is a valid value)
	pandoc        string
	keepIDs       bool
	noTags        bool
	noAttachments bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	conversion conversionFlags
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	convertFlags
	debounce time.Duration
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show every file handled")
}

// addConversionFlags adds converter tuning flags to a FlagSet.
func addConversionFlags(fs *flag.FlagSet, f *conversionFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc binary name or path")
	fs.BoolVar(&f.keepIDs, "keep-ids", false, "reuse IDs found in existing output files")
	fs.BoolVar(&f.noTags, "no-tags", false, "do not write #+filetags:")
	fs.BoolVar(&f.noAttachments, "no-attachments", false, "do not copy non-Markdown files")
}

// buildConvertFlagSet creates the convert FlagSet bound to f.
// Shared by parsing and completion so both see the same flags.
func buildConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	addConversionFlags(fs, &f.conversion)
	addCommonFlags(fs, &f.common)
	return fs
}

// buildWatchFlagSet creates the watch FlagSet bound to f.
func buildWatchFlagSet(f *watchFlags) *flag.FlagSet {
	fs := buildConvertFlagSet(&f.convertFlags)
	fs.Init("watch", flag.ContinueOnError)
	fs.DurationVar(&f.debounce, "debounce", 0, "wait this long after the last change (e.g. 500ms)")
	return fs
}

// buildDoctorFlagSet creates the doctor FlagSet.
func buildDoctorFlagSet(jsonOutput *bool) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(jsonOutput, "json", false, "print results as JSON")
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := buildConvertFlagSet(f)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.conversion.workersSet = fs.Changed("workers")
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string) (*watchFlags, []string, error) {
	f := &watchFlags{}
	fs := buildWatchFlagSet(f)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.conversion.workersSet = fs.Changed("workers")
	if f.debounce < 0 {
		return nil, nil, fmt.Errorf("%w: --debounce must not be negative", ErrUsage)
	}
	return f, fs.Args(), nil
}

// parseFlagSet parses args silently. flag.ErrHelp is returned as is so the
// caller can print its own usage; other parse errors wrap ErrUsage.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}
