package obsidian2org

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/obsidian2org/internal/fileutil"
	"github.com/alnah/obsidian2org/internal/pipeline"
)

// VaultResult summarizes a directory conversion.
type VaultResult struct {
	Notes       int        // notes converted in phase 1
	Attachments int        // non-Markdown files copied
	Linked      int        // .org files rewritten by identifier resolution
	Removed     int        // stale outputs deleted (WithPruneStale)
	Nodes       *NodeTable // identifiers assigned during the run
}

// vaultFile is a file found under the source root.
type vaultFile struct {
	path string // absolute
	rel  string // relative to the walked root, OS separators
}

// ConvertVault converts every note under srcDir into outDir, mirroring the
// directory layout, then rewrites file links between notes into id links.
//
// Phase 1 converts notes (and copies attachments) with up to Workers
// concurrent conversions, assigning each note a node identifier. Phase 2
// walks outDir and resolves links in every .org file against the completed
// node table. The first error stops the run; files already written stay on
// disk.
//
// An attachment whose output path is taken by a converted note (a.org next
// to a.md) is not copied and is reported as an EventWarning wrapping
// ErrOutputConflict.
func (c *Converter) ConvertVault(ctx context.Context, srcDir, outDir string) (*VaultResult, error) {
	if srcDir == "" || outDir == "" {
		return nil, ErrEmptyPath
	}

	srcAbs, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("resolving source directory: %w", err)
	}
	outAbs, err := filepath.Abs(outDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	info, err := os.Stat(srcAbs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadNote, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, srcDir)
	}

	if err := os.MkdirAll(outAbs, fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %v", ErrWriteOrg, err)
	}

	notes, attachments, err := walkVault(ctx, srcAbs, outAbs)
	if err != nil {
		return nil, err
	}
	if !c.cfg.attachments {
		attachments = nil
	}
	attachments = c.dropShadowedAttachments(notes, attachments, outAbs)

	nodes, err := c.convertNotes(ctx, notes, attachments, outAbs)
	if err != nil {
		return nil, err
	}

	removed := 0
	if c.cfg.pruneStale {
		if removed, err = c.pruneStale(ctx, outAbs, notes, attachments); err != nil {
			return nil, err
		}
	}

	linked, err := c.resolveLinks(ctx, outAbs, nodes)
	if err != nil {
		return nil, err
	}

	return &VaultResult{
		Notes:       len(notes),
		Attachments: len(attachments),
		Linked:      linked,
		Removed:     removed,
		Nodes:       nodes,
	}, nil
}

// noteOutputRel returns the output path of a note relative to the output root.
func noteOutputRel(note vaultFile) string {
	return fileutil.ReplaceExt(note.rel, pipeline.OrgExtension)
}

// dropShadowedAttachments removes attachments whose output path is also the
// output of a note. The note wins; each dropped file is reported.
func (c *Converter) dropShadowedAttachments(notes, attachments []vaultFile, outAbs string) []vaultFile {
	if len(attachments) == 0 {
		return attachments
	}

	taken := make(map[string]struct{}, len(notes))
	for _, note := range notes {
		taken[noteOutputRel(note)] = struct{}{}
	}

	kept := attachments[:0]
	for _, att := range attachments {
		if _, clash := taken[att.rel]; clash {
			c.report(Event{
				Kind:   EventWarning,
				Source: att.path,
				Target: filepath.Join(outAbs, att.rel),
				Err:    fmt.Errorf("%w: %s", ErrOutputConflict, att.rel),
			})
			continue
		}
		kept = append(kept, att)
	}
	return kept
}

// pruneStale deletes .org files under outAbs that carry a node header but
// were not produced by this run, such as the output of a deleted or renamed
// note. Files without a header were not written by ConvertVault and are
// left alone.
func (c *Converter) pruneStale(ctx context.Context, outAbs string, notes, attachments []vaultFile) (int, error) {
	produced := make(map[string]struct{}, len(notes)+len(attachments))
	for _, note := range notes {
		produced[noteOutputRel(note)] = struct{}{}
	}
	for _, att := range attachments {
		produced[att.rel] = struct{}{}
	}

	orgFiles, err := walkOrgFiles(ctx, outAbs)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, f := range orgFiles {
		if _, ok := produced[f.rel]; ok {
			continue
		}
		content, err := os.ReadFile(f.path) // #nosec G304 -- path comes from walking the output tree
		if err != nil {
			return removed, fmt.Errorf("%w: %v", ErrReadNote, err)
		}
		if _, ok := ParseHeaderID(string(content)); !ok {
			continue
		}
		if err := os.Remove(f.path); err != nil {
			return removed, fmt.Errorf("%w: removing %s: %v", ErrWriteOrg, f.rel, err)
		}
		removed++
		c.report(Event{Kind: EventRemoved, Target: f.path})
	}
	return removed, nil
}

// walkVault lists notes and attachments under root in lexical order.
// Hidden directories (.obsidian, .git, .trash) and the output directory,
// when nested in the vault, are skipped.
func walkVault(ctx context.Context, root, outAbs string) (notes, attachments []vaultFile, err error) {
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("%w: %v", ErrReadNote, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if p != root && (isHidden(d.Name()) || p == outAbs) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || isHidden(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		f := vaultFile{path: p, rel: rel}
		if strings.EqualFold(filepath.Ext(p), MarkdownExtension) {
			notes = append(notes, f)
		} else {
			attachments = append(attachments, f)
		}
		return nil
	})
	return notes, attachments, err
}

// convertNotes runs phase 1 and returns the completed node table.
// Workers write identifiers into their own slot; the table is built after
// the group finishes, so it never sees concurrent writes.
func (c *Converter) convertNotes(ctx context.Context, notes, attachments []vaultFile, outAbs string) (*NodeTable, error) {
	ids := make([]string, len(notes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.workers)

	for i, note := range notes {
		g.Go(func() error {
			id, err := c.convertVaultNote(gctx, note, outAbs)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}
	for _, att := range attachments {
		g.Go(func() error {
			return c.copyAttachment(gctx, att, outAbs)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	nodes := NewNodeTable()
	for i, note := range notes {
		nodes.Set(noteOutputRel(note), ids[i])
	}
	return nodes, nil
}

// convertVaultNote converts one note, prepends its metadata header and
// returns the identifier written into it.
func (c *Converter) convertVaultNote(ctx context.Context, note vaultFile, outAbs string) (string, error) {
	content, err := os.ReadFile(note.path) // #nosec G304 -- path comes from walking the vault
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadNote, err)
	}

	converted, err := c.ConvertText(ctx, string(content))
	if err != nil {
		return "", fmt.Errorf("%s: %w", note.rel, err)
	}

	dst := filepath.Join(outAbs, noteOutputRel(note))
	id := c.nodeID(dst)
	header := BuildHeader(id, fileutil.Stem(dst), converted.Tags)
	if err := writeOrg(dst, header+converted.Body); err != nil {
		return "", err
	}

	c.reportWarnings(note.path, dst, converted.Warnings)
	c.report(Event{Kind: EventConverted, Source: note.path, Target: dst})
	return id, nil
}

// nodeID returns the identifier for the note written to dst, reusing the
// existing one when identifiers are kept.
func (c *Converter) nodeID(dst string) string {
	if c.cfg.keepIDs {
		if existing, err := os.ReadFile(dst); err == nil { // #nosec G304 -- output path under outDir
			if id, ok := ParseHeaderID(string(existing)); ok {
				return id
			}
		}
	}
	return c.newID()
}

// copyAttachment copies a non-Markdown vault file verbatim.
func (c *Converter) copyAttachment(ctx context.Context, att vaultFile, outAbs string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := filepath.Join(outAbs, att.rel)
	if err := fileutil.CopyFile(att.path, dst); err != nil {
		return fmt.Errorf("%w: copying %s: %v", ErrWriteOrg, att.rel, err)
	}
	c.report(Event{Kind: EventCopied, Source: att.path, Target: dst})
	return nil
}

// resolveLinks runs phase 2 over every .org file under outAbs and returns
// how many files changed.
func (c *Converter) resolveLinks(ctx context.Context, outAbs string, nodes *NodeTable) (int, error) {
	orgFiles, err := walkOrgFiles(ctx, outAbs)
	if err != nil {
		return 0, err
	}

	changed := make([]bool, len(orgFiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.workers)

	for i, f := range orgFiles {
		g.Go(func() error {
			ok, err := c.resolveFile(gctx, f, nodes)
			changed[i] = ok
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n := 0
	for _, ok := range changed {
		if ok {
			n++
		}
	}
	return n, nil
}

// walkOrgFiles lists the .org files under root in lexical order.
func walkOrgFiles(ctx context.Context, root string) (orgFiles []vaultFile, err error) {
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("%w: %v", ErrReadNote, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() || !strings.EqualFold(filepath.Ext(p), pipeline.OrgExtension) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		orgFiles = append(orgFiles, vaultFile{path: p, rel: rel})
		return nil
	})
	return orgFiles, err
}

// resolveFile rewrites file links of one .org file into id links and writes
// it back when the content changed.
func (c *Converter) resolveFile(ctx context.Context, f vaultFile, nodes *NodeTable) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	content, err := os.ReadFile(f.path) // #nosec G304 -- path comes from walking the output tree
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrReadNote, err)
	}

	resolved := pipeline.ResolveIDs(string(content), nodes.ResolverFor(f.rel))
	if resolved == string(content) {
		return false, nil
	}

	if err := writeOrg(f.path, resolved); err != nil {
		return false, err
	}
	c.report(Event{Kind: EventLinked, Target: f.path})
	return true, nil
}

// isHidden reports dot-prefixed names such as .obsidian and .DS_Store.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
