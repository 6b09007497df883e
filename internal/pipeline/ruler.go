package pipeline

import (
	"regexp"
	"strings"
)

// Fenced code block delimiter (backticks or tildes).
var fencedCodeBlock = regexp.MustCompile("^(```|~~~)")

// horizontalRule is the rule line pandoc confuses with a setext underline
// when text follows it directly.
const horizontalRule = "---"

// NormalizeRulers inserts a blank line between a "---" rule line and the
// non-blank line right below it. Rules already followed by a blank line are
// left alone, so the pass is idempotent. Lines inside fenced code blocks are
// not touched.
func NormalizeRulers(content string) string {
	if !strings.Contains(content, horizontalRule+"\n") {
		return content
	}

	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines)+4)

	inCodeBlock := false
	for i, line := range lines {
		if fencedCodeBlock.MatchString(line) {
			inCodeBlock = !inCodeBlock
		}

		result = append(result, line)
		if inCodeBlock || line != horizontalRule || i+1 >= len(lines) {
			continue
		}
		if !isBlankLine(lines[i+1]) {
			result = append(result, "")
		}
	}

	return strings.Join(result, "\n")
}
