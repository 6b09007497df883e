package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/obsidian2org"
	"github.com/alnah/obsidian2org/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake document converters and environment
// ---------------------------------------------------------------------------

// passthroughConverter returns the Markdown unchanged, so tests see exactly
// what the pre- and postprocessors did.
type passthroughConverter struct{}

func (passthroughConverter) ToOrg(_ context.Context, markdown string) (string, error) {
	return markdown, nil
}

// failingConverter always returns err.
type failingConverter struct {
	err error
}

func (f failingConverter) ToOrg(context.Context, string) (string, error) {
	return "", f.err
}

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// newTestEnv returns an Environment writing to buffers. A nil converter
// leaves pandoc in place.
func newTestEnv(dc obsidian2org.DocumentConverter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: &stdout,
		Stderr: &stderr,
		Config: config.DefaultConfig(),
	}
	if dc != nil {
		env.DocConverter = dc
	}
	return env, &stdout, &stderr
}

// writeFile creates path (and parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s) error = %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}
