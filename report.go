package obsidian2org

// EventKind identifies a progress event.
type EventKind int

const (
	// EventConverted is sent after a note is written.
	EventConverted EventKind = iota
	// EventCopied is sent after an attachment is copied.
	EventCopied
	// EventLinked is sent after a note's links were rewritten to id links.
	EventLinked
	// EventWarning is sent for recoverable problems, such as a note whose
	// frontmatter could not be decoded.
	EventWarning
	// EventRemoved is sent after a stale output file is deleted.
	EventRemoved
)

// String returns a short lowercase name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventConverted:
		return "converted"
	case EventCopied:
		return "copied"
	case EventLinked:
		return "linked"
	case EventWarning:
		return "warning"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes one file handled by a Converter.
type Event struct {
	Kind   EventKind
	Source string // input path (empty for EventLinked and EventRemoved)
	Target string // output path
	Err    error  // set for EventWarning
}

// Reporter receives progress events. Calls are serialized by the Converter,
// so implementations need no locking of their own.
type Reporter func(Event)
