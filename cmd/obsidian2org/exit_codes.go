package main

import (
	"errors"
	"os"

	"github.com/alnah/obsidian2org"
	"github.com/alnah/obsidian2org/internal/config"
)

// Exit codes for the obsidian2org CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitPandoc  = 4 // Pandoc missing or failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Pandoc errors (exit 4)
	if errors.Is(err, obsidian2org.ErrPandocFailed) ||
		errors.Is(err, obsidian2org.ErrPandocNotFound) {
		return ExitPandoc
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, obsidian2org.ErrEmptyPath) ||
		errors.Is(err, obsidian2org.ErrInvalidExtension) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, obsidian2org.ErrReadNote) ||
		errors.Is(err, obsidian2org.ErrWriteOrg) ||
		errors.Is(err, obsidian2org.ErrNotDirectory) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}
