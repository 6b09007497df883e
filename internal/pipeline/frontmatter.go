package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/obsidian2org/internal/yamlutil"
)

// ErrFrontMatter indicates the YAML frontmatter block could not be decoded.
var ErrFrontMatter = errors.New("invalid frontmatter")

// errNotProperties marks a fenced block that is valid YAML but not a
// mapping, such as text between two thematic breaks.
var errNotProperties = errors.New("block is not a properties mapping")

// FrontMatter holds the note properties the converter uses.
type FrontMatter struct {
	Tags []string
}

// frontMatterEnvelope mirrors the Obsidian properties block.
// Tags may be a YAML list or a single comma/space separated string.
type frontMatterEnvelope struct {
	Tags any `yaml:"tags"`
	Tag  any `yaml:"tag"`
}

// yamlFrontMatter decodes "---" fenced frontmatter with yamlutil.
var yamlFrontMatter = frontmatter.NewFormat("---", "---", unmarshalFrontMatter)

// SplitFrontMatter separates the YAML frontmatter from the Markdown body.
// Content without frontmatter is returned unchanged, as is content whose
// leading "---" block is not a YAML mapping (a note opening with a thematic
// break). On a decoding error the full content is returned along with an
// error wrapping ErrFrontMatter, so callers can keep converting the note as
// plain Markdown.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	if !strings.HasPrefix(content, "---") {
		return FrontMatter{}, content, nil
	}

	var env frontMatterEnvelope
	body, err := frontmatter.Parse(strings.NewReader(content), &env, yamlFrontMatter)
	if errors.Is(err, errNotProperties) {
		return FrontMatter{}, content, nil
	}
	if err != nil {
		return FrontMatter{}, content, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	fm := FrontMatter{
		Tags: appendUnique(tagValues(env.Tags), tagValues(env.Tag)...),
	}
	return fm, strings.TrimLeft(string(body), "\n"), nil
}

// unmarshalFrontMatter tolerates an empty properties block and rejects
// blocks that do not decode to a mapping with errNotProperties.
func unmarshalFrontMatter(data []byte, v any) error {
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var raw any
	if err := yamlutil.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.(type) {
	case map[string]any, map[any]any:
		return yamlutil.Unmarshal(data, v)
	default:
		return errNotProperties
	}
}

// tagValues flattens a tags property into individual tag names.
func tagValues(raw any) []string {
	var out []string
	switch v := raw.(type) {
	case string:
		out = append(out, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, v...)
	}

	tags := make([]string, 0, len(out))
	for _, t := range out {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// appendUnique appends the values of add missing from dst, keeping order.
func appendUnique(dst []string, add ...string) []string {
	seen := make(map[string]struct{}, len(dst)+len(add))
	out := dst[:0]
	for _, s := range dst {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range add {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
