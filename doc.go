// Package obsidian2org converts Obsidian Markdown notes into Org-mode files
// for org-roam.
//
// # Quick Start
//
// Convert a whole vault:
//
//	conv := obsidian2org.NewConverter()
//	result, err := conv.ConvertVault(ctx, "vault", "org")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d notes, %d links resolved\n", result.Notes, result.Linked)
//
// Or a single note, written to out/<stem>.org:
//
//	path, err := conv.ConvertFile(ctx, "note.md", "out")
//
// # Conversion Pipeline
//
// Each note goes through these stages:
//
//  1. Frontmatter split (tags are kept for the header)
//  2. Obsidian comments (%%...%%) encoded so pandoc keeps them
//  3. Horizontal rules separated from the following line
//  4. Markdown to Org via pandoc
//  5. Comments restored as Org line comments, wiki links rewritten to file links
//
// In vault mode every note also receives a property drawer with a random node
// identifier, and once all notes are written, file links between notes are
// replaced with id links.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := obsidian2org.NewConverter(
//	    obsidian2org.WithPandocPath("/opt/pandoc/bin/pandoc"),
//	    obsidian2org.WithWorkers(0), // auto
//	    obsidian2org.WithKeepIDs(true),
//	)
//
// # Error Handling
//
// Errors wrap the package sentinels and can be checked with errors.Is:
//
//	if errors.Is(err, obsidian2org.ErrPandocNotFound) {
//	    // pandoc is not installed
//	}
package obsidian2org
