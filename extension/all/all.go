// Package all imports the built-in pubd extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each extension registers itself via init()
	_ "github.com/jpl-au/pubd/extension/core"
	_ "github.com/jpl-au/pubd/extension/object"
	_ "github.com/jpl-au/pubd/extension/publish"
	_ "github.com/jpl-au/pubd/extension/tag"
)
