package obsidian2org

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alnah/obsidian2org/internal/fileutil"
	"github.com/alnah/obsidian2org/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.ObsidianPreprocessor)(nil)
	_ pipeline.OrgPostprocessor     = (*pipeline.OrgLinkPostprocessor)(nil)
	_ DocumentConverter             = (*PandocConverter)(nil)
	_ CommandRunner                 = (*ExecRunner)(nil)
)

// MarkdownExtension is the extension of notes in a vault.
const MarkdownExtension = ".md"

// Converter orchestrates the Obsidian-to-Org pipeline.
// Create with NewConverter, then use ConvertText, ConvertFile or ConvertVault.
// A Converter is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	preprocessor  pipeline.MarkdownPreprocessor
	postprocessor pipeline.OrgPostprocessor
	docConverter  DocumentConverter
	newID         func() string

	reportMu sync.Mutex
	reporter Reporter
}

// Note is one converted Markdown document.
type Note struct {
	Body     string   // Org text, without metadata header
	Tags     []string // Org tags from frontmatter and inline #tags
	Warnings []error  // recoverable problems met while converting
}

// NewConverter creates a Converter with default configuration: pandoc from
// PATH, one worker, tags and attachments enabled, fresh identifiers.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			pandocPath:  DefaultPandocPath,
			workers:     defaultWorkers,
			tags:        true,
			attachments: true,
		},
		preprocessor:  &pipeline.ObsidianPreprocessor{},
		postprocessor: &pipeline.OrgLinkPostprocessor{},
		newID:         NewNodeID,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create pandoc converter if not injected (e.g., by tests)
	if c.docConverter == nil {
		c.docConverter = NewPandocConverter(c.cfg.pandocPath)
	}

	return c
}

// Workers returns the number of notes converted concurrently by ConvertVault.
func (c *Converter) Workers() int {
	return c.cfg.workers
}

// ConvertText runs the single-note pipeline: frontmatter split, comment
// encoding, ruler normalization, external conversion, comment decoding and
// wiki link rewriting.
func (c *Converter) ConvertText(ctx context.Context, markdown string) (*Note, error) {
	note := &Note{}

	markdown = pipeline.NormalizeLineEndings(markdown)
	fm, body, err := pipeline.SplitFrontMatter(markdown)
	if err != nil {
		note.Warnings = append(note.Warnings, err)
	}
	if c.cfg.tags {
		note.Tags = pipeline.NoteTags(fm, body)
	}

	md := c.preprocessor.PreprocessMarkdown(ctx, body)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	org, err := c.docConverter.ToOrg(ctx, md)
	if err != nil {
		return nil, fmt.Errorf("converting to org: %w", err)
	}

	note.Body = c.postprocessor.PostprocessOrg(ctx, org)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return note, nil
}

// ConvertFile converts one note into outDir/<stem>.org and returns the output
// path. outDir is created if needed. Single files carry no metadata header
// and keep file links, since there is no vault to resolve them against.
func (c *Converter) ConvertFile(ctx context.Context, src, outDir string) (string, error) {
	if src == "" || outDir == "" {
		return "", ErrEmptyPath
	}
	if !strings.EqualFold(filepath.Ext(src), MarkdownExtension) {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, src)
	}

	content, err := os.ReadFile(src) // #nosec G304 -- user-provided note path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadNote, err)
	}

	note, err := c.ConvertText(ctx, string(content))
	if err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}

	dst := filepath.Join(outDir, fileutil.Stem(src)+pipeline.OrgExtension)
	if err := writeOrg(dst, note.Body); err != nil {
		return "", err
	}

	c.reportWarnings(src, dst, note.Warnings)
	c.report(Event{Kind: EventConverted, Source: src, Target: dst})
	return dst, nil
}

// writeOrg writes content to dst, creating parent directories.
func writeOrg(dst, content string) error {
	if err := os.MkdirAll(filepath.Dir(dst), fileutil.DirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOrg, err)
	}
	if err := os.WriteFile(dst, []byte(content), fileutil.FilePermissions); err != nil { // #nosec G306 -- notes are meant to be readable
		return fmt.Errorf("%w: %v", ErrWriteOrg, err)
	}
	return nil
}

func (c *Converter) report(e Event) {
	if c.reporter == nil {
		return
	}
	c.reportMu.Lock()
	defer c.reportMu.Unlock()
	c.reporter(e)
}

func (c *Converter) reportWarnings(src, dst string, warnings []error) {
	for _, w := range warnings {
		c.report(Event{Kind: EventWarning, Source: src, Target: dst, Err: w})
	}
}
