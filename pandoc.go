package obsidian2org

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/alnah/obsidian2org/internal/fileutil"
	"github.com/alnah/obsidian2org/internal/process"
)

// DefaultPandocPath is the pandoc binary looked up on PATH.
const DefaultPandocPath = "pandoc"

// pandocArgs are the fixed conversion flags. Auto identifiers are disabled so
// headings do not grow CUSTOM_ID properties, and wrapping is preserved so
// paragraphs keep the note's own line breaks.
var pandocArgs = []string{
	"--from=markdown-auto_identifiers",
	"--to=org",
	"--wrap=preserve",
}

// DocumentConverter converts preprocessed Markdown to an Org body.
type DocumentConverter interface {
	ToOrg(ctx context.Context, markdown string) (string, error)
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The child runs in its
// own process group which is killed as a whole when ctx is cancelled.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binary is user-configured pandoc
	process.Isolate(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			process.KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.String(), stderr.String(), ctxErr
	}
	return stdout.String(), stderr.String(), err
}

// PandocConverter converts Markdown to Org by invoking the Pandoc CLI.
type PandocConverter struct {
	Binary string
	Runner CommandRunner
}

// NewPandocConverter creates a PandocConverter with a real command runner.
// An empty binary falls back to DefaultPandocPath.
func NewPandocConverter(binary string) *PandocConverter {
	if binary == "" {
		binary = DefaultPandocPath
	}
	return &PandocConverter{Binary: binary, Runner: &ExecRunner{}}
}

// ToOrg converts Markdown content to an Org body using Pandoc.
// The Markdown is passed through a temp file and the Org text read from stdout.
// Blank input short-circuits to an empty body without starting pandoc.
func (c *PandocConverter) ToOrg(ctx context.Context, markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(markdown, "md")
	if err != nil {
		return "", err
	}
	defer cleanup()

	args := append(append([]string(nil), pandocArgs...), tmpPath)
	stdout, stderr, err := c.Runner.Run(ctx, c.Binary, args...)
	if err != nil {
		return "", c.wrapError(ctx, stderr, err)
	}

	return stdout, nil
}

// Version returns the first line of `pandoc --version`.
func (c *PandocConverter) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := c.Runner.Run(ctx, c.Binary, "--version")
	if err != nil {
		return "", c.wrapError(ctx, stderr, err)
	}
	line, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSpace(line), nil
}

// wrapError maps a runner failure to the package sentinels.
func (c *PandocConverter) wrapError(ctx context.Context, stderr string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrPandocNotFound, c.Binary)
	}
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("%w: %s: %v", ErrPandocFailed, msg, err)
	}
	return fmt.Errorf("%w: %v", ErrPandocFailed, err)
}
