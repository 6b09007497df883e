package pipeline

import (
	"context"
	"regexp"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// MarkdownPreprocessor prepares Obsidian Markdown for the external converter.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// OrgPostprocessor finalizes the external converter's Org output.
type OrgPostprocessor interface {
	PostprocessOrg(ctx context.Context, content string) string
}

// ObsidianPreprocessor applies the transformations pandoc needs before it
// can read an Obsidian note.
type ObsidianPreprocessor struct{}

// PreprocessMarkdown normalizes line endings, encodes comments and separates
// horizontal rules from the text below them. Comments are encoded first so a
// rule inside a comment block is already marker-prefixed.
func (p *ObsidianPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = NormalizeLineEndings(content)
	content = EncodeComments(content)
	content = NormalizeRulers(content)
	return content
}

// OrgLinkPostprocessor restores comments and rewrites wiki links.
type OrgLinkPostprocessor struct{}

// PostprocessOrg decodes comment markers then rewrites wiki links, so link
// syntax inside comments is rewritten too.
func (p *OrgLinkPostprocessor) PostprocessOrg(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = DecodeComments(content)
	content = FixLinks(content)
	return content
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
