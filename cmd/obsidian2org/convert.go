package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/obsidian2org"
	"github.com/alnah/obsidian2org/internal/config"
	"github.com/alnah/obsidian2org/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// defaultOutputDir is used when neither arguments, flags nor config name one.
const defaultOutputDir = "out"

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
		}
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion of a single note or a whole vault.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	cfg, err := resolveConfig(&flags.common, &flags.conversion, env)
	if err != nil {
		return err
	}

	input, outDir, err := resolveInput(positional, flags.output, cfg)
	if err != nil {
		return err
	}

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	conv := newConverter(cfg, env, &flags.common)
	start := env.Now()

	if !info.IsDir() {
		if _, err := conv.ConvertFile(ctx, input, outDir); err != nil {
			return withHint(err)
		}
		return nil
	}

	res, err := conv.ConvertVault(ctx, input, outDir)
	if err != nil {
		return withHint(err)
	}
	if !flags.common.quiet {
		printVaultSummary(env, res, env.Now().Sub(start))
	}
	return nil
}

// resolveConfig builds the effective configuration.
// Priority: CLI flags > env vars > config file > env.Config > defaults.
func resolveConfig(common *commonFlags, conv *conversionFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	switch {
	case name != "":
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	case env.Config != nil:
		base := *env.Config
		cfg = &base
	default:
		cfg = config.DefaultConfig()
	}

	applyEnvConfig(envCfg, cfg)

	if err := mergeFlags(conv, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *conversionFlags, cfg *config.Config) error {
	if flags.workersSet {
		if err := validateWorkers(flags.workers); err != nil {
			return err
		}
		cfg.Convert.Workers = flags.workers
	}
	if flags.pandoc != "" {
		cfg.Pandoc.Path = flags.pandoc
	}
	if flags.keepIDs {
		cfg.Convert.KeepIDs = true
	}
	if flags.noTags {
		cfg.Convert.Tags = false
	}
	if flags.noAttachments {
		cfg.Convert.Attachments = false
	}
	return nil
}

// validateWorkers checks the --workers value.
func validateWorkers(n int) error {
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)%s", ErrInvalidWorkerCount, n, config.MaxWorkers, hints.ForWorkers(config.MaxWorkers))
	}
	return nil
}

// resolveInput returns the input path and output directory.
// The output comes from the second argument, --output, the config, or "out".
func resolveInput(positional []string, output string, cfg *config.Config) (input, outDir string, err error) {
	if len(positional) > 2 {
		return "", "", fmt.Errorf("%w: expected <input> [output], got %d arguments", ErrUsage, len(positional))
	}

	input = cfg.Input.DefaultDir
	if len(positional) > 0 {
		input = positional[0]
	}
	if input == "" {
		return "", "", ErrNoInput
	}

	switch {
	case len(positional) == 2 && output != "":
		return "", "", fmt.Errorf("%w: output given both as argument and --output", ErrUsage)
	case len(positional) == 2:
		outDir = positional[1]
	case output != "":
		outDir = output
	case cfg.Output.DefaultDir != "":
		outDir = cfg.Output.DefaultDir
	default:
		outDir = defaultOutputDir
	}
	return input, outDir, nil
}

// newConverter creates a library Converter from the effective configuration.
func newConverter(cfg *config.Config, env *Environment, common *commonFlags, extra ...obsidian2org.Option) *obsidian2org.Converter {
	opts := []obsidian2org.Option{
		obsidian2org.WithPandocPath(cfg.Pandoc.Path),
		obsidian2org.WithWorkers(cfg.Convert.Workers),
		obsidian2org.WithKeepIDs(cfg.Convert.KeepIDs),
		obsidian2org.WithTags(cfg.Convert.Tags),
		obsidian2org.WithAttachments(cfg.Convert.Attachments),
		obsidian2org.WithReporter(newReporter(env, common)),
	}
	if env.DocConverter != nil {
		opts = append(opts, obsidian2org.WithDocumentConverter(env.DocConverter))
	}
	opts = append(opts, extra...)

	conv := obsidian2org.NewConverter(opts...)
	if common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", conv.Workers())
	}
	return conv
}

// newReporter prints library events. Conversions are listed unless quiet;
// copies, link rewrites and removals only in verbose mode; warnings always.
func newReporter(env *Environment, common *commonFlags) obsidian2org.Reporter {
	return func(e obsidian2org.Event) {
		switch e.Kind {
		case obsidian2org.EventWarning:
			fmt.Fprintf(env.Stderr, "warning: %s: %v\n", e.Source, e.Err)
		case obsidian2org.EventConverted:
			if !common.quiet {
				fmt.Fprintf(env.Stdout, "Converted %s -> %s\n", e.Source, e.Target)
			}
		case obsidian2org.EventCopied:
			if common.verbose && !common.quiet {
				fmt.Fprintf(env.Stdout, "Copied %s -> %s\n", e.Source, e.Target)
			}
		case obsidian2org.EventLinked:
			if common.verbose && !common.quiet {
				fmt.Fprintf(env.Stdout, "Linked %s\n", e.Target)
			}
		case obsidian2org.EventRemoved:
			if common.verbose && !common.quiet {
				fmt.Fprintf(env.Stdout, "Removed %s\n", e.Target)
			}
		}
	}
}

// printVaultSummary prints totals of a vault conversion.
func printVaultSummary(env *Environment, res *obsidian2org.VaultResult, elapsed time.Duration) {
	fmt.Fprintf(env.Stdout, "Done: %d note(s), %d attachment(s), %d linked in %s\n",
		res.Notes, res.Attachments, res.Linked, elapsed.Round(time.Millisecond))
}

// withHint appends an actionable hint to errors users can fix themselves.
func withHint(err error) error {
	switch {
	case errors.Is(err, obsidian2org.ErrPandocNotFound):
		return fmt.Errorf("%w%s", err, hints.ForPandocNotFound())
	case errors.Is(err, obsidian2org.ErrPandocFailed):
		return fmt.Errorf("%w%s", err, hints.ForPandocFailed())
	case errors.Is(err, obsidian2org.ErrWriteOrg):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	default:
		return err
	}
}
