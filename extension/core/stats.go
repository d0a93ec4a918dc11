// stats.go implements "pubd stats".

package core

import (
	"fmt"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/internal/format"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show object, published and deleted counts",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			st, err := e.svc.Stats(c.Context())

			log.Event("core:stats", "stats").Author(cmd.Author()).Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("stats: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]int64{
					"objects":    st.Objects,
					"published":  st.Published,
					"deleted":    st.Deleted,
					"tag_values": st.TagValues,
					"authors":    st.Authors,
					"oldest_at":  st.OldestAt,
					"newest_at":  st.NewestAt,
				})
			}
			return format.Stats(cmd.Out(), st)
		},
	}
}
