package obsidian2org

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrInvalidExtension = errors.New("note must have a .md extension")
	ErrNotDirectory     = errors.New("not a directory")
	ErrReadNote         = errors.New("failed to read note")
	ErrWriteOrg         = errors.New("failed to write org file")
	ErrOutputConflict   = errors.New("output path already used by a note")

	// External converter errors.
	ErrPandocFailed   = errors.New("pandoc conversion failed")
	ErrPandocNotFound = errors.New("pandoc executable not found")
)
