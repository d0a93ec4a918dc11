// version.go prints build information.

package core

import (
	"fmt"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var short bool
	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the build tag, build time, git commit, Go version and platform.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()
			switch {
			case cmd.JSON():
				return cmd.PrintJSON(info)
			case short:
				fmt.Fprintln(cmd.Out(), info.BuildTag)
				return nil
			}
			for _, l := range info.Lines() {
				fmt.Fprintf(cmd.Out(), "%-12s %s\n", l[0]+":", l[1])
			}
			return nil
		},
	}
	c.Flags().BoolVarP(&short, "short", "s", false, "print only the build tag")
	return c
}
