package obsidian2org

import (
	"strings"

	"github.com/google/uuid"
)

// Property drawer lines written at the top of every vault note.
const (
	propertiesOpen  = ":PROPERTIES:"
	propertiesClose = ":END:"
	idProperty      = ":ID:"
)

// NewNodeID returns a fresh random node identifier in upper-case canonical
// 8-4-4-4-12 form.
func NewNodeID() string {
	return strings.ToUpper(uuid.NewString())
}

// IsNodeID reports whether s is a canonical upper-case node identifier.
func IsNodeID(s string) bool {
	if len(s) != 36 || strings.ToUpper(s) != s {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// BuildHeader renders the metadata header that precedes a note body:
//
//	:PROPERTIES:
//	:ID: <id>
//	:END:
//	#+title: <title>
//	#+filetags: :a:b:
//
// The filetags line is omitted when tags is empty. The header always ends
// with one blank line.
func BuildHeader(id, title string, tags []string) string {
	var b strings.Builder
	b.WriteString(propertiesOpen + "\n")
	b.WriteString(idProperty + " " + id + "\n")
	b.WriteString(propertiesClose + "\n")
	b.WriteString("#+title: " + title + "\n")
	if len(tags) > 0 {
		b.WriteString("#+filetags: :" + strings.Join(tags, ":") + ":\n")
	}
	b.WriteString("\n")
	return b.String()
}

// ParseHeaderID returns the :ID: of the property drawer opening content.
// Content that does not start with a drawer, or whose ID is not a valid
// identifier, yields ok == false.
func ParseHeaderID(content string) (id string, ok bool) {
	if !strings.HasPrefix(content, propertiesOpen+"\n") {
		return "", false
	}

	drawer := strings.TrimPrefix(content, propertiesOpen+"\n")
	for _, line := range strings.Split(drawer, "\n") {
		line = strings.TrimSpace(line)
		if line == propertiesClose {
			return "", false
		}
		if value, found := strings.CutPrefix(line, idProperty); found {
			parsed, err := uuid.Parse(strings.TrimSpace(value))
			if err != nil {
				return "", false
			}
			return strings.ToUpper(parsed.String()), true
		}
	}
	return "", false
}
