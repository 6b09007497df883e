package hints

// Notes:
// - ForPandocNotFound tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func TestForPandocNotFound_InDocker(t *testing.T) {
	// Save and restore IsInContainer (not parallel-safe, see package notes)
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("OBSIDIAN2ORG_PANDOC", "")

	hint := ForPandocNotFound()

	if !strings.Contains(hint, "hint:") {
		t.Error("expected hint prefix")
	}
	if !strings.Contains(hint, "apt-get") {
		t.Error("expected package manager suggestion in Docker")
	}
	if !strings.Contains(hint, "OBSIDIAN2ORG_PANDOC") {
		t.Error("expected OBSIDIAN2ORG_PANDOC suggestion")
	}
}

func TestForPandocNotFound_OnHost(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("OBSIDIAN2ORG_PANDOC", "")

	hint := ForPandocNotFound()

	if !strings.Contains(hint, "pandoc.org") {
		t.Error("expected install URL on host")
	}
	if strings.Contains(hint, "apt-get") {
		t.Error("should not suggest apt-get outside containers")
	}
}

func TestForPandocNotFound_PathAlreadySet(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("OBSIDIAN2ORG_PANDOC", "/opt/pandoc/bin/pandoc")

	hint := ForPandocNotFound()

	if strings.Contains(hint, "OBSIDIAN2ORG_PANDOC") {
		t.Error("should not suggest OBSIDIAN2ORG_PANDOC when already set")
	}
}

func TestForPandocFailed(t *testing.T) {
	t.Parallel()

	hint := ForPandocFailed()

	if !strings.Contains(hint, "--verbose") {
		t.Errorf("expected --verbose mention, got %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
		},
		{
			name:     "with paths",
			paths:    []string{"./foo.yaml", "~/.config/obsidian2org/foo.yaml"},
			contains: "create ~/.config/obsidian2org/foo.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForWorkers(t *testing.T) {
	t.Parallel()

	hint := ForWorkers(64)

	if !strings.Contains(hint, "up to 64") {
		t.Errorf("expected limit in hint, got %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForPandocFailed(),
		ForOutputDirectory(),
		ForWorkers(8),
		ForConfigNotFound(nil),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
