package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	flag "github.com/spf13/pflag"

	"github.com/alnah/obsidian2org"
)

// runWatchCmd parses flags and runs the watch command.
func runWatchCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printWatchUsage(env.Stdout)
		}
		return err
	}

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
	if !info.IsDir() {
		return fmt.Errorf("%w: watch needs a vault directory: %s", obsidian2org.ErrNotDirectory, input)
	}

	// Rebuilds must not change IDs, or links held by Org tooling would break.
	cfg.Convert.KeepIDs = true

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	if flags.debounce > 0 {
		debounce = flags.debounce
	}

	w := &vaultWatcher{
		conv:     newConverter(cfg, env, &flags.common, obsidian2org.WithPruneStale(true)),
		srcDir:   input,
		outDir:   outDir,
		debounce: debounce,
		stderr:   env.Stderr,
		now:      env.Now,
	}
	if !flags.common.quiet {
		w.onBuild = func(res *obsidian2org.VaultResult, elapsed time.Duration) {
			printVaultSummary(env, res, elapsed)
		}
		fmt.Fprintf(env.Stderr, "Watching %s (Ctrl-C to stop)\n", input)
	}
	return w.run(ctx)
}

// vaultWatcher rebuilds a vault whenever files under it change.
type vaultWatcher struct {
	conv     *obsidian2org.Converter
	srcDir   string
	outDir   string
	debounce time.Duration
	stderr   io.Writer
	now      func() time.Time

	// onBuild is called after each successful conversion.
	onBuild func(res *obsidian2org.VaultResult, elapsed time.Duration)

	srcAbs string
	outAbs string
}

// run converts the vault once, then watches srcDir until ctx is cancelled.
// A failed first conversion is returned; failed rebuilds are reported and
// watching continues.
func (w *vaultWatcher) run(ctx context.Context) error {
	var err error
	if w.srcAbs, err = filepath.Abs(w.srcDir); err != nil {
		return fmt.Errorf("resolving source directory: %w", err)
	}
	if w.outAbs, err = filepath.Abs(w.outDir); err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}
	if w.now == nil {
		w.now = time.Now
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fw.Close()

	// Watch before the first build so no change made during it is lost.
	if err := w.addDirsRecursive(fw, w.srcAbs); err != nil {
		return fmt.Errorf("watching %s: %w", w.srcDir, err)
	}

	if err := w.build(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return withHint(err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		} else {
			timer.Reset(w.debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case <-fire:
			if err := w.build(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				fmt.Fprintf(w.stderr, "error: %v\n", withHint(err))
			}

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.ignored(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := w.addDirsRecursive(fw, ev.Name); addErr != nil {
						fmt.Fprintf(w.stderr, "warning: watching %s: %v\n", ev.Name, addErr)
					}
				}
			}
			schedule()

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.stderr, "warning: watcher: %v\n", watchErr)
		}
	}
}

// build runs one full vault conversion.
func (w *vaultWatcher) build(ctx context.Context) error {
	start := w.now()
	res, err := w.conv.ConvertVault(ctx, w.srcAbs, w.outAbs)
	if err != nil {
		return err
	}
	if w.onBuild != nil {
		w.onBuild(res, w.now().Sub(start))
	}
	return nil
}

// ignored reports whether path is the output tree or lies in a hidden entry
// of the vault (.obsidian, .git, editor swap files).
func (w *vaultWatcher) ignored(path string) bool {
	if path == w.outAbs || strings.HasPrefix(path, w.outAbs+string(filepath.Separator)) {
		return true
	}
	rel, err := filepath.Rel(w.srcAbs, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// addDirsRecursive adds root and all its watched subdirectories to fw.
func (w *vaultWatcher) addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.srcAbs && w.ignored(path) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
