// cat.go implements "pubd cat". On a terminal the content is rendered
// with glamour unless --raw is given; pipes get the raw text.

package object

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/cat"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newCatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "cat <path|key>",
		Aliases: []string{"show"},
		Short:   "Read an object",
		Long:    `Output the content of an object. With -o json the tags and publish state are included.`,
		Args:    cobra.ExactArgs(1),
		RunE:    e.runCat,
	}
	c.Flags().BoolP(extension.FlagDeleted, "D", false, "Read a deleted object")
	c.Flags().BoolP(extension.FlagNumber, "n", false, "Number all output lines")
	c.Flags().StringP(extension.FlagLines, "l", "", "Line range (e.g., 10:20, 5:, :15)")
	c.Flags().Bool(extension.FlagRaw, false, "Output raw content without rendering")
	return c
}

func (e *Extension) runCat(c *cobra.Command, args []string) error {
	p := args[0]
	opts, err := catOptions(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	var buf bytes.Buffer
	result, err := cat.Run(c.Context(), &buf, e.svc, p, opts)

	ev := log.Event("object:cat", "read").Author(cmd.Author()).Path(p)
	if result.Object != nil {
		ev.Resolved(result.Object.Path).ResultRevision(result.Object.Revision)
	}
	ev.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", p, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result.Object.ToJSON(true))
	}

	out := buf.String()
	if raw, _ := c.Flags().GetBool(extension.FlagRaw); !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, rerr := glamour.Render(out, "dark"); rerr == nil {
			out = rendered
		}
	}
	_, err = io.WriteString(cmd.Out(), out)
	return err
}

func catOptions(c *cobra.Command) (cat.Options, error) {
	var opts cat.Options
	opts.IncludeDeleted, _ = c.Flags().GetBool(extension.FlagDeleted)
	opts.LineNumbers, _ = c.Flags().GetBool(extension.FlagNumber)

	lines, _ := c.Flags().GetString(extension.FlagLines)
	if lines == "" {
		return opts, nil
	}
	var err error
	opts.StartLine, opts.EndLine, err = parseLineRange(lines)
	return opts, err
}

// parseLineRange parses "10:20", "5:" or ":15" into 1-indexed bounds,
// where 0 means unbounded.
func parseLineRange(s string) (start, end int, err error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid line range %q: expected format START:END", s)
	}
	if start, err = lineBound(from); err != nil {
		return 0, 0, err
	}
	if end, err = lineBound(to); err != nil {
		return 0, 0, err
	}
	if start > 0 && end > 0 && start > end {
		return 0, 0, fmt.Errorf("start line %d is greater than end line %d", start, end)
	}
	return start, end, nil
}

func lineBound(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid line number %q", s)
	}
	return n, nil
}
