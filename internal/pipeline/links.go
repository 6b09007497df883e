package pipeline

import (
	"path"
	"regexp"
	"strings"
)

// OrgExtension is appended to wiki link targets.
const OrgExtension = ".org"

// Precompiled link patterns.
var (
	// [[target]] with no pipe or bracket in target.
	plainWikiLink = regexp.MustCompile(`\[\[([^|\[\]]+)\]\]`)

	// [[target|display]]
	describedWikiLink = regexp.MustCompile(`\[\[([^|\[\]]+)\|([^\[\]]*)\]\]`)

	// [[file:target][display]]
	orgFileLink = regexp.MustCompile(`\[\[file:([^\[\]]+)\]\[([^\[\]]*)\]\]`)
)

// attachmentExtensions are the file types Obsidian links to besides notes.
// Links to them keep their own extension.
var attachmentExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".svg": {}, ".webp": {}, ".avif": {},
	".mp3": {}, ".wav": {}, ".m4a": {}, ".ogg": {}, ".flac": {}, ".3gp": {},
	".mp4": {}, ".webm": {}, ".ogv": {}, ".mov": {}, ".mkv": {},
	".pdf": {}, ".canvas": {}, ".base": {},
}

// linkTypePrefixes are Org link types that must never be treated as note names.
var linkTypePrefixes = []string{"file:", "id:", "mailto:"}

// NodeResolver maps a file link target (without the .org extension) to a
// node identifier.
type NodeResolver interface {
	Resolve(target string) (id string, ok bool)
}

// NodeResolverFunc adapts a function to NodeResolver.
type NodeResolverFunc func(target string) (string, bool)

// Resolve calls f(target).
func (f NodeResolverFunc) Resolve(target string) (string, bool) {
	return f(target)
}

// FixLinks rewrites Obsidian wiki links into Org file links.
//
//	[[note]]         -> [[file:note.org][note]]
//	[[note|display]] -> [[file:note.org][display]]
//	[[img.png]]      -> [[file:img.png][img.png]]
//
// Links whose target is a URL or already an Org link pass through unchanged.
func FixLinks(content string) string {
	if !strings.Contains(content, "[[") {
		return content
	}

	content = plainWikiLink.ReplaceAllStringFunc(content, func(m string) string {
		target := plainWikiLink.FindStringSubmatch(m)[1]
		if isExternalTarget(target) {
			return m
		}
		return fileLink(target, target)
	})

	return describedWikiLink.ReplaceAllStringFunc(content, func(m string) string {
		groups := describedWikiLink.FindStringSubmatch(m)
		// Obsidian escapes the pipe inside tables: [[note\|display]].
		target := strings.TrimSuffix(groups[1], `\`)
		if isExternalTarget(target) {
			return m
		}
		return fileLink(target, groups[2])
	})
}

// ResolveIDs replaces Org file links whose target is known to nodes with
// id links. Unknown targets are left as file links.
func ResolveIDs(content string, nodes NodeResolver) string {
	if nodes == nil || !strings.Contains(content, "[[file:") {
		return content
	}

	return orgFileLink.ReplaceAllStringFunc(content, func(m string) string {
		groups := orgFileLink.FindStringSubmatch(m)
		id, ok := nodes.Resolve(strings.TrimSuffix(groups[1], OrgExtension))
		if !ok || id == "" {
			return m
		}
		return "[[id:" + id + "][" + groups[2] + "]]"
	})
}

// fileLink formats an Org file link to target.org, or to target itself
// when it names an attachment.
func fileLink(target, display string) string {
	if !isAttachmentTarget(target) {
		target += OrgExtension
	}
	return "[[file:" + target + "][" + display + "]]"
}

// isAttachmentTarget reports whether target names a non-note file.
func isAttachmentTarget(target string) bool {
	name, _, _ := strings.Cut(target, "#")
	_, ok := attachmentExtensions[strings.ToLower(path.Ext(strings.TrimSpace(name)))]
	return ok
}

// isExternalTarget returns true for URLs and targets already carrying an
// Org link type.
func isExternalTarget(target string) bool {
	if strings.Contains(target, "://") {
		return true
	}
	for _, prefix := range linkTypePrefixes {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	return false
}
