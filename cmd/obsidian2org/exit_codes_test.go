package main

// Notes:
// - exitCodeFor: we test every sentinel family, wrapping through fmt.Errorf,
//   and the general fallback.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/obsidian2org"
	"github.com/alnah/obsidian2org/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown error", errors.New("boom"), ExitGeneral},

		{"pandoc failed", obsidian2org.ErrPandocFailed, ExitPandoc},
		{"pandoc not found wrapped", fmt.Errorf("a.md: %w", obsidian2org.ErrPandocNotFound), ExitPandoc},

		{"config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config invalid", config.ErrConfigInvalid, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"empty path", obsidian2org.ErrEmptyPath, ExitUsage},
		{"invalid extension", obsidian2org.ErrInvalidExtension, ExitUsage},
		{"usage", fmt.Errorf("%w: too many arguments", ErrUsage), ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},

		{"not exist", fmt.Errorf("reading input: %w", os.ErrNotExist), ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"read note", obsidian2org.ErrReadNote, ExitIO},
		{"write org", obsidian2org.ErrWriteOrg, ExitIO},
		{"not a directory", obsidian2org.ErrNotDirectory, ExitIO},
		{"no input", ErrNoInput, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor_PandocWinsOverIO(t *testing.T) {
	t.Parallel()

	// A pandoc failure on a note path still reports the pandoc code.
	err := fmt.Errorf("%w: %w", obsidian2org.ErrPandocNotFound, os.ErrNotExist)
	if got := exitCodeFor(err); got != ExitPandoc {
		t.Errorf("exitCodeFor() = %d, want %d", got, ExitPandoc)
	}
}
