package obsidian2org_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/obsidian2org"
)

// echoConverter stands in for pandoc so the examples run without it.
// Plain text lines convert to themselves.
type echoConverter struct{}

func (echoConverter) ToOrg(_ context.Context, markdown string) (string, error) {
	return markdown, nil
}

// Example converts a single note. Comments become Org comments and wiki
// links become file links.
func Example() {
	conv := obsidian2org.NewConverter(
		obsidian2org.WithDocumentConverter(echoConverter{}),
	)

	note, err := conv.ConvertText(context.Background(), "Read [[Reading list|the list]] %%todo%%\n#project/alpha\n")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(note.Body)
	fmt.Println(note.Tags)
	// Output:
	// Read [[file:Reading list.org][the list]] <!--todo-->
	// #project/alpha
	// [project_alpha]
}

// ExampleBuildHeader renders the property drawer written above vault notes.
func ExampleBuildHeader() {
	fmt.Print(obsidian2org.BuildHeader("2D1B6C8E-0F3A-4C55-9E3B-7A1F0D2C4B6E", "meeting", []string{"work", "weekly"}))
	// Output:
	// :PROPERTIES:
	// :ID: 2D1B6C8E-0F3A-4C55-9E3B-7A1F0D2C4B6E
	// :END:
	// #+title: meeting
	// #+filetags: :work:weekly:
}

// ExampleNodeTable_ResolverFor shows how link targets are matched against the
// identifiers of a vault.
func ExampleNodeTable_ResolverFor() {
	nodes := obsidian2org.NewNodeTable()
	nodes.Set("index.org", "11111111-1111-4111-8111-111111111111")
	nodes.Set("projects/plan.org", "22222222-2222-4222-8222-222222222222")

	resolve := nodes.ResolverFor("projects/plan.org")
	for _, target := range []string{"index", "plan", "missing"} {
		id, ok := resolve.Resolve(target)
		fmt.Println(target, ok, id)
	}
	// Output:
	// index true 11111111-1111-4111-8111-111111111111
	// plan true 22222222-2222-4222-8222-222222222222
	// missing false
}

// Example_vault converts a directory and links its notes by identifier.
func Example_vault() {
	src, err := os.MkdirTemp("", "vault-src-")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = os.RemoveAll(src) }()
	out, err := os.MkdirTemp("", "vault-out-")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = os.RemoveAll(out) }()

	_ = os.WriteFile(filepath.Join(src, "a.md"), []byte("See [[b]]\n"), 0o600)
	_ = os.WriteFile(filepath.Join(src, "b.md"), []byte("Back to [[a]]\n"), 0o600)

	conv := obsidian2org.NewConverter(
		obsidian2org.WithDocumentConverter(echoConverter{}),
	)
	result, err := conv.ConvertVault(context.Background(), src, out)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	content, err := os.ReadFile(filepath.Join(out, "a.org"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	bID, _ := result.Nodes.Lookup("b")

	fmt.Println(result.Notes, "notes,", result.Linked, "linked")
	fmt.Println(strings.Contains(string(content), "[[id:"+bID+"][b]]"))
	// Output:
	// 2 notes, 2 linked
	// true
}
