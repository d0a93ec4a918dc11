// http.go implements "pubd http", which serves the publish API until
// interrupted.

package core

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/httpapi"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newHTTPCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "http",
		Short: "Serve the HTTP API",
		Long: `Serve objects and the publish toggle over HTTP.

  pubd http                    # listen on http.addr (default 127.0.0.1:7420)
  pubd http --addr :8080

See 'pubd guide http' for routes.`,
		Args: cobra.NoArgs,
		RunE: e.runHTTP,
	}
	c.Flags().String(extension.FlagAddr, "", "Listen address (overrides http.addr)")
	return c
}

func (e *Extension) runHTTP(c *cobra.Command, _ []string) error {
	addr, _ := c.Flags().GetString(extension.FlagAddr)
	if addr == "" {
		addr = e.cfg.HTTPAddr()
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := httpapi.New(e.svc, cmd.Author()).ListenAndServe(ctx, addr)

	log.Event("core:http", "serve").Author(cmd.Author()).Detail("addr", addr).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("http: %w", err))
	}
	return nil
}
