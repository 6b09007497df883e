package pipeline

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// inlineTag matches an Obsidian #tag preceded by start of text, whitespace
// or an opening parenthesis. Nested tags use "/".
var inlineTag = regexp.MustCompile(`(?:^|[\s(])#(\p{L}[\p{L}\p{N}/_-]*)`)

// orgTagReplacer maps characters Org does not allow in tags.
var orgTagReplacer = strings.NewReplacer("/", "_", "-", "_")

// tagParser is shared; goldmark parsers are safe for concurrent use.
var tagParser = goldmark.New().Parser()

// ExtractTags returns the inline #tags of a Markdown document in first-seen
// order. Tags inside code spans, code blocks, raw HTML and autolinks are
// ignored, as are heading markers.
func ExtractTags(markdown string) []string {
	if !strings.Contains(markdown, "#") {
		return nil
	}

	src := []byte(markdown)
	doc := tagParser.Parse(text.NewReader(src))

	var prose strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.CodeSpan, *ast.FencedCodeBlock, *ast.CodeBlock,
			*ast.HTMLBlock, *ast.RawHTML, *ast.AutoLink:
			prose.WriteByte(' ')
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				prose.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					prose.WriteByte('\n')
				}
			}
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock {
			prose.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	})

	var tags []string
	for _, m := range inlineTag.FindAllStringSubmatch(prose.String(), -1) {
		tags = append(tags, strings.TrimRight(m[1], "/"))
	}
	return appendUnique(tags)
}

// OrgTags converts Obsidian tag names into Org tags, dropping duplicates
// produced by the conversion.
func OrgTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = orgTagReplacer.Replace(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return appendUnique(out)
}

// NoteTags merges frontmatter tags with the inline tags of body and returns
// them as Org tags. Commented-out text does not contribute tags.
func NoteTags(fm FrontMatter, body string) []string {
	tags := append([]string(nil), fm.Tags...)
	return OrgTags(appendUnique(tags, ExtractTags(StripComments(body))...))
}
