/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go holds the root command and the process entry point.
//
// Extensions are only initialised for commands that need the store, so init,
// guide, config and version run before any database exists.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/pubd/internal/log"
	"github.com/spf13/cobra"
)

var errNoAuthor = errors.New(`author not configured (checked .pubd/config.yaml and ~/.pubd/config.yaml)

Run: pubd config author.name "Your Name"

See 'pubd guide config' for local vs global options.`)

var rootCmd = &cobra.Command{
	Use:   "pubd",
	Short: "Object store with a publish toggle",
	Long: `Stores text objects by path and controls their visibility with a publish marker.
Objects are served over the CLI, an HTTP API and an MCP server.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE: func(c *cobra.Command, _ []string) error {
		return c.Help()
	},
}

// prepare validates global flags and opens the store for the command being run.
func prepare(c *cobra.Command, _ []string) error {
	if output != "" && !slices.Contains(validOutputFormats, output) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
	}
	if author == "" {
		author = detectAuthor()
	}

	name := topLevel(c).Name()
	if author == "" && authorRequiredCommands[name] {
		return errNoAuthor
	}
	if noStoreCommands[name] {
		return nil
	}

	err := initExtensions()
	if err == nil {
		return nil
	}
	if JSON() {
		_ = PrintJSON(map[string]string{"error": err.Error()})
		c.SilenceErrors = true
	}
	return fmt.Errorf("initialise extensions: %w", err)
}

// topLevel walks up to the child of root, so "tag add" resolves to "tag".
func topLevel(c *cobra.Command) *cobra.Command {
	for c.HasParent() && c.Parent().HasParent() {
		c = c.Parent()
	}
	return c
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	defer closeService()

	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func closeService() {
	if extService == nil {
		return
	}
	if err := extService.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", err)
	}
}

