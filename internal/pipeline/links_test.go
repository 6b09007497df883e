package pipeline

// Notes:
// - FixLinks is checked with exact strings: the Org link syntax is the contract.
// - ResolveIDs uses a map-backed NodeResolverFunc; target lookup order across
//   directories belongs to the root package's NodeTable and is tested there.

import "testing"

// ---------------------------------------------------------------------------
// TestFixLinks - Wiki link to Org file link
// ---------------------------------------------------------------------------

func TestFixLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare link",
			input: "[[A]]",
			want:  "[[file:A.org][A]]",
		},
		{
			name:  "link with display text",
			input: "[[A|B]]",
			want:  "[[file:A.org][B]]",
		},
		{
			name:  "external org link unchanged",
			input: "[[http://x][y]]",
			want:  "[[http://x][y]]",
		},
		{
			name:  "bare url link unchanged",
			input: "see [[https://example.com]]",
			want:  "see [[https://example.com]]",
		},
		{
			name:  "target with spaces and subdirectory",
			input: "[[notes/My Note]]",
			want:  "[[file:notes/My Note.org][notes/My Note]]",
		},
		{
			name:  "bare then described on one line",
			input: "[[a]] and [[b|c]]",
			want:  "[[file:a.org][a]] and [[file:b.org][c]]",
		},
		{
			name:  "escaped pipe from a table",
			input: `| [[a\|alias]] |`,
			want:  "| [[file:a.org][alias]] |",
		},
		{
			name:  "already converted file link unchanged",
			input: "[[file:a.org][a]]",
			want:  "[[file:a.org][a]]",
		},
		{
			name:  "id link unchanged",
			input: "[[id:1234][a]]",
			want:  "[[id:1234][a]]",
		},
		{
			name:  "bare id target unchanged",
			input: "[[id:1234]]",
			want:  "[[id:1234]]",
		},
		{
			name:  "embedded image keeps its extension",
			input: "![[img.png]]",
			want:  "![[file:img.png][img.png]]",
		},
		{
			name:  "attachment with display text",
			input: "[[assets/Report.PDF|report]]",
			want:  "[[file:assets/Report.PDF][report]]",
		},
		{
			name:  "dotted note name still gets org extension",
			input: "[[v1.2 notes]]",
			want:  "[[file:v1.2 notes.org][v1.2 notes]]",
		},
		{
			name:  "no links is identity",
			input: "plain [text] here",
			want:  "plain [text] here",
		},
		{
			name:  "display text with pipe",
			input: "[[a|b|c]]",
			want:  "[[file:a.org][b|c]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FixLinks(tt.input)
			if got != tt.want {
				t.Errorf("FixLinks(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFixLinks_Idempotent - No double rewrite
// ---------------------------------------------------------------------------

func TestFixLinks_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"[[A]]", "[[A|B]]", "x [[a]] y [[b|c]] [[http://z][w]]"}
	for _, in := range inputs {
		once := FixLinks(in)
		if twice := FixLinks(once); twice != once {
			t.Errorf("FixLinks not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

// ---------------------------------------------------------------------------
// TestResolveIDs - File link to id link
// ---------------------------------------------------------------------------

func TestResolveIDs(t *testing.T) {
	t.Parallel()

	nodes := NodeResolverFunc(func(target string) (string, bool) {
		ids := map[string]string{
			"b":     "B-ID",
			"sub/c": "C-ID",
		}
		id, ok := ids[target]
		return id, ok
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "known target",
			input: "see [[file:b.org][b]]",
			want:  "see [[id:B-ID][b]]",
		},
		{
			name:  "known target in subdirectory keeps display",
			input: "[[file:sub/c.org][The C]]",
			want:  "[[id:C-ID][The C]]",
		},
		{
			name:  "unknown target left unchanged",
			input: "[[file:missing.org][missing]]",
			want:  "[[file:missing.org][missing]]",
		},
		{
			name:  "external link unchanged",
			input: "[[https://x][y]]",
			want:  "[[https://x][y]]",
		},
		{
			name:  "several links",
			input: "[[file:b.org][one]] [[file:nope.org][two]] [[file:b.org][three]]",
			want:  "[[id:B-ID][one]] [[file:nope.org][two]] [[id:B-ID][three]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ResolveIDs(tt.input, nodes)
			if got != tt.want {
				t.Errorf("ResolveIDs(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveIDs_NilResolver(t *testing.T) {
	t.Parallel()

	in := "[[file:b.org][b]]"
	if got := ResolveIDs(in, nil); got != in {
		t.Errorf("ResolveIDs with nil resolver = %q, want unchanged", got)
	}
}
