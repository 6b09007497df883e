package obsidian2org

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one note is converted at a time.
	MinWorkers = 1

	// MaxAutoWorkers caps concurrent pandoc processes when sizing automatically.
	MaxAutoWorkers = 8
)

// ResolveWorkers determines how many notes are converted concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0)

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxAutoWorkers {
		return MaxAutoWorkers
	}
	return n
}
