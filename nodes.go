package obsidian2org

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/obsidian2org/internal/pipeline"
)

// NodeTable maps output-relative note paths to node identifiers.
//
// Keys are slash separated and carry no .org extension ("sub/b"). A table is
// filled once after phase 1 of a vault conversion and only read afterwards;
// Set is not safe for concurrent use, lookups are.
type NodeTable struct {
	ids   map[string]string
	stems map[string][]string
}

// NewNodeTable returns an empty table.
func NewNodeTable() *NodeTable {
	return &NodeTable{
		ids:   make(map[string]string),
		stems: make(map[string][]string),
	}
}

// NodeKey converts an output-relative file path into a table key.
func NodeKey(relPath string) string {
	key := path.Clean(filepath.ToSlash(relPath))
	return strings.TrimSuffix(key, pipeline.OrgExtension)
}

// Set records id for the note at relPath, replacing any previous entry.
func (t *NodeTable) Set(relPath, id string) {
	key := NodeKey(relPath)
	if _, exists := t.ids[key]; !exists {
		stem := path.Base(key)
		t.stems[stem] = append(t.stems[stem], key)
	}
	t.ids[key] = id
}

// Lookup returns the identifier stored under key.
func (t *NodeTable) Lookup(key string) (string, bool) {
	id, ok := t.ids[NodeKey(key)]
	return id, ok
}

// Len returns the number of recorded notes.
func (t *NodeTable) Len() int {
	return len(t.ids)
}

// ResolverFor returns a resolver for links written in the note at fromRel.
//
// A target is tried relative to the linking note's directory, then from the
// output root, then, when it has no directory part, as a file stem that is
// unique across the vault. Heading and block fragments (#...) are ignored.
func (t *NodeTable) ResolverFor(fromRel string) pipeline.NodeResolver {
	dir := path.Dir(NodeKey(fromRel))

	return pipeline.NodeResolverFunc(func(target string) (string, bool) {
		target, _, _ = strings.Cut(target, "#")
		target = strings.TrimSuffix(strings.TrimSpace(target), ".md")
		if target == "" {
			return "", false
		}

		if dir != "." && !strings.HasPrefix(target, "/") {
			if id, ok := t.ids[path.Join(dir, target)]; ok {
				return id, true
			}
		}
		if id, ok := t.ids[path.Clean(strings.TrimPrefix(target, "/"))]; ok {
			return id, true
		}
		if strings.Contains(target, "/") {
			return "", false
		}
		if keys := t.stems[target]; len(keys) == 1 {
			return t.ids[keys[0]], true
		}
		return "", false
	})
}
