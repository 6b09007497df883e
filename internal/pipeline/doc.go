// Package pipeline implements the text passes of the Obsidian-to-Org conversion.
//
// Every pass takes a whole document as a string and returns a new string;
// none of them touch the filesystem or spawn processes:
//   - Frontmatter split and tag extraction (before conversion)
//   - Comment encoding and horizontal rule normalization (before pandoc)
//   - Comment decoding and wiki link rewriting (after pandoc)
//   - File link to id link resolution (once every node has an identifier)
//
// Running pandoc, assigning identifiers and walking directories is handled by
// the root obsidian2org package.
package pipeline
