package main

// Notes:
// - parseConvertFlags / parseWatchFlags: we test flag binding, interspersed
//   positional arguments, explicit workers detection and error wrapping.

import (
	"errors"
	"reflect"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Convert flag binding
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"vault", "-o", "org", "-w", "3", "--pandoc", "/opt/pandoc",
		"--keep-ids", "--no-tags", "--no-attachments", "-c", "work", "-v", "extra",
	}

	f, positional, err := parseConvertFlags(args)
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if !reflect.DeepEqual(positional, []string{"vault", "extra"}) {
		t.Errorf("positional = %v, want [vault extra]", positional)
	}
	if f.output != "org" {
		t.Errorf("output = %q, want org", f.output)
	}
	want := conversionFlags{
		workers:       3,
		workersSet:    true,
		pandoc:        "/opt/pandoc",
		keepIDs:       true,
		noTags:        true,
		noAttachments: true,
	}
	if f.conversion != want {
		t.Errorf("conversion = %+v, want %+v", f.conversion, want)
	}
	if f.common != (commonFlags{config: "work", verbose: true}) {
		t.Errorf("common = %+v", f.common)
	}
}

func TestParseConvertFlags_WorkersUnset(t *testing.T) {
	t.Parallel()

	f, _, err := parseConvertFlags([]string{"vault"})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}
	if f.conversion.workersSet {
		t.Error("workersSet = true without --workers")
	}
}

func TestParseConvertFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown flag", []string{"--bogus"}, ErrUsage},
		{"bad int", []string{"-w", "many"}, ErrUsage},
		{"help", []string{"--help"}, flag.ErrHelp},
		{"short help", []string{"-h"}, flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := parseConvertFlags(tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("parseConvertFlags(%v) error = %v, want %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseWatchFlags - Watch flag binding
// ---------------------------------------------------------------------------

func TestParseWatchFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseWatchFlags([]string{"vault", "org", "--debounce", "750ms", "-w", "0"})
	if err != nil {
		t.Fatalf("parseWatchFlags() error = %v", err)
	}
	if !reflect.DeepEqual(positional, []string{"vault", "org"}) {
		t.Errorf("positional = %v, want [vault org]", positional)
	}
	if f.debounce != 750*time.Millisecond {
		t.Errorf("debounce = %v, want 750ms", f.debounce)
	}
	if !f.conversion.workersSet || f.conversion.workers != 0 {
		t.Errorf("workers = %d (set %v), want explicit 0", f.conversion.workers, f.conversion.workersSet)
	}
}

func TestParseWatchFlags_NegativeDebounce(t *testing.T) {
	t.Parallel()

	_, _, err := parseWatchFlags([]string{"vault", "--debounce", "-1s"})
	if !errors.Is(err, ErrUsage) {
		t.Errorf("parseWatchFlags() error = %v, want ErrUsage", err)
	}
}

func TestBuildWatchFlagSet_ExtendsConvert(t *testing.T) {
	t.Parallel()

	convert := buildConvertFlagSet(&convertFlags{})
	watch := buildWatchFlagSet(&watchFlags{})

	convert.VisitAll(func(f *flag.Flag) {
		if watch.Lookup(f.Name) == nil {
			t.Errorf("watch is missing convert flag --%s", f.Name)
		}
	})
	if watch.Lookup("debounce") == nil {
		t.Error("watch is missing --debounce")
	}
	if convert.Lookup("debounce") != nil {
		t.Error("convert should not have --debounce")
	}
}
