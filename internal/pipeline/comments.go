package pipeline

import "strings"

// CommentDelimiter opens and closes an Obsidian comment.
const CommentDelimiter = "%%"

// CommentMarker prefixes each line of a block comment while the document
// goes through pandoc. It is plain text for pandoc and never reaches the
// final output: DecodeComments turns it into an Org line comment.
const CommentMarker = "#!#comment:"

// OrgCommentPrefix starts an Org line comment.
const OrgCommentPrefix = "# "

// Inline comments are rendered as HTML comments, which pandoc keeps as raw
// inline markup.
const (
	inlineCommentOpen  = "<!--"
	inlineCommentClose = "-->"
)

// EncodeComments rewrites Obsidian %% comments into a form pandoc preserves.
//
// Spans between delimiters alternate between text and comment, starting with
// text. A comment without a line break becomes an inline HTML comment. A
// comment spanning lines becomes one CommentMarker-prefixed line per content
// line, dropping the blank remainder of the opening delimiter's line.
// An unpaired delimiter comments out everything up to the end of input.
func EncodeComments(content string) string {
	if !strings.Contains(content, CommentDelimiter) {
		return content
	}

	chunks := strings.Split(content, CommentDelimiter)
	var b strings.Builder
	b.Grow(len(content) + len(chunks)*len(CommentMarker))

	for i, chunk := range chunks {
		if i%2 == 0 {
			b.WriteString(chunk)
			continue
		}
		if !strings.Contains(chunk, "\n") {
			b.WriteString(inlineCommentOpen)
			b.WriteString(chunk)
			b.WriteString(inlineCommentClose)
			continue
		}
		writeBlockComment(&b, chunk)
	}

	return b.String()
}

// writeBlockComment emits one marker line per line of chunk.
// Line terminators are kept so the text after the closing delimiter stays
// on its own line.
func writeBlockComment(b *strings.Builder, chunk string) {
	lines := strings.SplitAfter(chunk, "\n")
	if len(lines) > 0 && isBlankLine(lines[0]) {
		lines = lines[1:]
	}
	for _, line := range lines {
		// SplitAfter yields an empty tail when chunk ends with "\n".
		if line == "" {
			continue
		}
		b.WriteString(CommentMarker)
		b.WriteString(line)
	}
}

// DecodeComments replaces every CommentMarker with the Org comment prefix.
func DecodeComments(content string) string {
	if !strings.Contains(content, CommentMarker) {
		return content
	}

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, CommentMarker, OrgCommentPrefix)
	}
	return strings.Join(lines, "")
}

// isBlankLine returns true if the line is empty or contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// StripComments returns content with every comment span removed, using the
// same pairing rules as EncodeComments.
func StripComments(content string) string {
	if !strings.Contains(content, CommentDelimiter) {
		return content
	}

	chunks := strings.Split(content, CommentDelimiter)
	var b strings.Builder
	b.Grow(len(content))
	for i := 0; i < len(chunks); i += 2 {
		b.WriteString(chunks[i])
	}
	return b.String()
}
