// write.go implements "pubd write". Content comes from the argument, -f,
// or stdin, in that order. Tags and publish state are left as they are.

package object

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/diff"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// writeResult contains the outcome of a write operation.
type writeResult struct {
	Path     string       `json:"path"`
	Key      string       `json:"key"`
	Revision int          `json:"revision"`
	Created  bool         `json:"created"`
	Diff     *diff.Result `json:"diff,omitempty"`
}

func (e *Extension) newWriteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "write <path> [content]",
		Short: "Write an object",
		Long: `Create an object or replace its content. Content from argument, -f, or stdin.

  pubd write docs/intro "# Intro"
  pubd write docs/intro -f intro.md --diff`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runWrite,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read content from file")
	c.Flags().BoolP(extension.FlagDiff, "d", false, "Show what the write changed")
	return c
}

func (e *Extension) runWrite(c *cobra.Command, args []string) error {
	ctx := c.Context()
	p := args[0]
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)

	content, err := readContent(c, args)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	var before string
	if showDiff {
		prev, err := e.svc.Get(ctx, p, false)
		switch {
		case err == nil:
			before = prev.Content
		case !errors.Is(err, store.ErrNotFound):
			return cmd.PrintJSONError(fmt.Errorf("write %q: %w", p, err))
		}
	}

	l := log.Event("object:write", "write").Author(cmd.Author()).Path(p)

	o, created, err := e.svc.Write(ctx, p, content, cmd.Author())
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("write %q: %w", p, err))
	}
	l.Resolved(o.Path).ResultRevision(o.Revision).Detail("created", created).Write(nil)

	result := writeResult{Path: o.Path, Key: o.Key, Revision: o.Revision, Created: created}
	if showDiff {
		w := cmd.Out()
		if cmd.JSON() {
			w = io.Discard
		}
		colour := !cmd.JSON() && term.IsTerminal(int(os.Stdout.Fd()))
		d := diff.Write(w, before, content, o.Path+" (before)", o.Path, colour)
		result.Diff = &d
	}

	if !cmd.JSON() {
		verb := "Updated"
		if created {
			verb = "Created"
		}
		fmt.Fprintf(cmd.Out(), "%s %s (rev %d)\n", verb, o.Path, o.Revision)
	}
	return cmd.PrintJSON(result)
}

func readContent(c *cobra.Command, args []string) (string, error) {
	file, _ := c.Flags().GetString(extension.FlagFile)
	switch {
	case len(args) >= 2:
		return args[1], nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read file %q: %w", file, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}
