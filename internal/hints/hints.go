// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strconv"
	"strings"

	"github.com/alnah/obsidian2org/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForPandocNotFound returns hints for a missing pandoc binary.
// Suggests a package manager install inside containers and the
// OBSIDIAN2ORG_PANDOC override when no custom path is configured.
func ForPandocNotFound() string {
	var hints []string

	if IsInContainer() {
		hints = append(hints, "install pandoc in the image (apt-get install pandoc)")
	} else {
		hints = append(hints, "install pandoc from https://pandoc.org/installing.html")
	}

	if os.Getenv("OBSIDIAN2ORG_PANDOC") == "" {
		hints = append(hints, "or point --pandoc / OBSIDIAN2ORG_PANDOC at the binary")
	}

	return formatHints(hints)
}

// ForPandocFailed returns a hint for notes pandoc could not convert.
func ForPandocFailed() string {
	return format("rerun with --verbose to see which note failed")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/obsidian2org/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/obsidian2org) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/obsidian2org") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForWorkers returns a hint for out-of-range worker counts.
func ForWorkers(maxWorkers int) string {
	return format("use --workers 0 for auto, or a value up to " + strconv.Itoa(maxWorkers))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
