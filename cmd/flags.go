/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go holds the persistent flags and the output helpers extensions
// use instead of reaching into cobra.

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/pubd/internal/config"
	"github.com/jpl-au/pubd/internal/publish"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

// Global flag values.
var (
	output string
	author string
	force  bool
	db     string
	dir    string
)

var out io.Writer = os.Stdout

// Out is where commands write human-readable output.
func Out() io.Writer { return out }

// JSON reports whether -o json was given.
func JSON() bool { return output == "json" }

// Author is --author, falling back to the configured author.name.
func Author() string { return author }

// Force reports whether confirmations are skipped.
func Force() bool { return force }

// DB is the database name from --db or PUBD_DB.
func DB() string { return flagOrEnv(db, "PUBD_DB") }

// Dir is the directory holding .pubd from --dir or PUBD_DIR. Empty means
// discover it from the working directory.
func Dir() string { return flagOrEnv(dir, "PUBD_DIR") }

func flagOrEnv(v, env string) string {
	if v != "" {
		return v
	}
	return os.Getenv(env)
}

// PrintJSON writes v as one line of JSON when -o json is set.
func PrintJSON(v any) error {
	if !JSON() {
		return nil
	}
	if err := json.NewEncoder(out).Encode(v); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return nil
}

// PrintJSONError prints err in JSON format if output is JSON and returns
// nil so cobra does not print it again. Publish errors print as
// {"code": 409, "message": "..."}; anything else as {"error": "..."}.
func PrintJSONError(err error) error {
	if !JSON() || err == nil {
		return err
	}
	var body any = map[string]string{"error": err.Error()}
	var pe *publish.Error
	if errors.As(err, &pe) {
		body = map[string]any{"code": pe.Code, "message": pe.Message}
	}
	_ = PrintJSON(body)
	return nil
}

// detectAuthor reads author.name from the active config.
func detectAuthor() string {
	cfg, err := config.Load()
	if err != nil {
		return ""
	}
	return cfg.Author.Name
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&output, "output", "o", "", "Output format: json")
	f.StringVarP(&author, "author", "a", "", "Author attribution")
	f.BoolVar(&force, "force", false, "Skip confirmations")
	f.StringVar(&db, "db", "", "Database name (e.g., drafts for pubd-drafts.db)")
	f.StringVar(&dir, "dir", "", "Directory containing .pubd (skips discovery)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
