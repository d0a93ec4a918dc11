// guide.go implements "pubd guide".

package core

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/guide"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the pubd usage guide",
		Long: `Outputs the pubd guide, rendered when writing to a terminal.

  pubd guide           # overview
  pubd guide publish   # publishing and its failure codes`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: guide.List(),
		RunE: func(_ *cobra.Command, args []string) error {
			var topic string
			if len(args) == 1 {
				topic = args[0]
			}
			page, err := guide.Get(topic)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": topic, "content": page})
			}
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if out, err := glamour.Render(page, "dark"); err == nil {
					page = out
				}
			}
			fmt.Fprint(cmd.Out(), page)
			return nil
		},
	}
}
