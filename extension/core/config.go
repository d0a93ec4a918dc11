// config.go implements "pubd config".
//
// A local .pubd/config.yaml, when present, replaces ~/.pubd/config.yaml.
// Writes go back to the file that was read; --local forces the local file
// even before it exists.

package core

import (
	"fmt"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/config"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  pubd config                     # show config
  pubd config limits.max_tags     # show one value
  pubd config limits.max_tags 64  # set it

Configuration locations:
  Global: ~/.pubd/config.yaml
  Local:  .pubd/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.pubd/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	load := config.Load
	if local, _ := c.Flags().GetBool(extension.FlagLocal); local {
		load = func() (*config.Config, error) { return config.LoadScope(config.ScopeLocal) }
	}
	cfg, err := load()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	if len(args) == 0 {
		log.Event("core:config", "list").Author(cmd.Author()).Write(nil)
		all := cfg.All()
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		for _, k := range config.Keys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}
		return nil
	}

	key := args[0]
	ev := log.Event("core:config", "get").Author(cmd.Author()).Detail("key", key)
	if len(args) == 1 {
		v, err := cfg.Get(key)
		ev.Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", key, err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{key: v})
		}
		fmt.Fprintln(cmd.Out(), v)
		return nil
	}

	scope := cfg.Scope().String()
	ev = log.Event("core:config", "set").Author(cmd.Author()).Detail("key", key).Detail("scope", scope)
	err = cfg.Set(key, args[1])
	if err == nil {
		err = cfg.Save()
	}
	ev.Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", key, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"key": key, "value": args[1], "scope": scope})
	}
	fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", key, args[1], scope)
	return nil
}
