/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// Command pubd stores text objects and toggles their publication.
package main

import (
	"os"

	"github.com/jpl-au/pubd/cmd"
	_ "github.com/jpl-au/pubd/extension/all"
)

func main() {
	os.Exit(cmd.Execute())
}
