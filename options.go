package obsidian2org

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	pandocPath  string
	workers     int
	keepIDs     bool
	tags        bool
	attachments bool
	pruneStale  bool
}

// defaultWorkers keeps vault conversion sequential unless asked otherwise.
const defaultWorkers = 1

// WithPandocPath sets the pandoc binary used by the default document converter.
// Ignored when WithDocumentConverter is also given.
func WithPandocPath(path string) Option {
	return func(c *Converter) {
		c.cfg.pandocPath = path
	}
}

// WithDocumentConverter replaces pandoc with another Markdown to Org backend.
func WithDocumentConverter(dc DocumentConverter) Option {
	return func(c *Converter) {
		c.docConverter = dc
	}
}

// WithWorkers sets how many notes are converted concurrently.
// Zero or a negative value selects a size from GOMAXPROCS (see ResolveWorkers).
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.cfg.workers = ResolveWorkers(n)
	}
}

// WithKeepIDs reuses the :ID: found in an existing output file instead of
// generating a new identifier.
func WithKeepIDs(keep bool) Option {
	return func(c *Converter) {
		c.cfg.keepIDs = keep
	}
}

// WithTags enables or disables the #+filetags: header line.
func WithTags(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.tags = enabled
	}
}

// WithAttachments enables or disables copying non-Markdown vault files.
func WithAttachments(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.attachments = enabled
	}
}

// WithPruneStale makes ConvertVault delete .org files left in the output
// directory by notes that no longer exist. Only files carrying a node
// header are deleted.
func WithPruneStale(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.pruneStale = enabled
	}
}

// WithReporter registers a callback receiving per-file progress events.
func WithReporter(r Reporter) Option {
	return func(c *Converter) {
		c.reporter = r
	}
}

// WithNodeIDGenerator replaces NewNodeID, mainly for deterministic tests.
// Panics if gen is nil (programmer error).
func WithNodeIDGenerator(gen func() string) Option {
	if gen == nil {
		panic("obsidian2org: WithNodeIDGenerator generator must not be nil")
	}
	return func(c *Converter) {
		c.newID = gen
	}
}
