package main

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunHelp - Per-command help
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{"no command", nil, "Commands:", ""},
		{"convert", []string{"convert"}, "Usage: obsidian2org convert", ""},
		{"watch", []string{"watch"}, "Usage: obsidian2org watch", ""},
		{"doctor", []string{"doctor"}, "Usage: obsidian2org doctor", ""},
		{"completion", []string{"completion"}, "Usage: obsidian2org completion", ""},
		{"version", []string{"version"}, "Usage: obsidian2org version", ""},
		{"help", []string{"help"}, "Usage: obsidian2org help", ""},
		{"unknown", []string{"nope"}, "", "Unknown command: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			runHelp(tt.args, &Environment{Stdout: &stdout, Stderr: &stderr})

			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout should contain %q, got %q", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, stderr.String())
			}
		})
	}
}

// TestPrintConvertUsage_ListsEveryFlag keeps the hand-written help in sync
// with the flag set.
func TestPrintConvertUsage_ListsEveryFlag(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printWatchUsage(&buf)
	help := buf.String()

	for _, f := range extractFlagsFromFlagSet(buildWatchFlagSet(&watchFlags{})) {
		if !strings.Contains(help, "--"+f.Long) {
			t.Errorf("watch help does not mention --%s", f.Long)
		}
	}
}
