// flags.go defines constants for all CLI flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagAll           = "all"            // Include all items (including deleted)
	FlagDeleted       = "deleted"        // Show deleted items only
	FlagDiff          = "diff"           // Show diff output
	FlagDryRun        = "dry-run"        // Preview without making changes
	FlagIncludeHidden = "include-hidden" // Include hidden files/dirs
	FlagLocal         = "local"          // Use local scope (gitignored)
	FlagLong          = "long"           // Long format output
	FlagNumber        = "number"         // Number output lines
	FlagProject       = "project"        // Restrict to the current project
	FlagPublish       = "publish"        // Publish after writing
	FlagPublished     = "published"      // Published objects only
	FlagRaw           = "raw"            // Raw output without formatting
	FlagRecursive     = "recursive"      // Recursive operation
	FlagReverse       = "reverse"        // Reverse sort order
	FlagShare         = "share"          // Mark as shared (committed)
	FlagTree          = "tree"           // Tree output

	// String flags

	FlagAddr      = "addr"       // Listen address
	FlagFile      = "file"       // Read content from file
	FlagLines     = "lines"      // Line range
	FlagOlderThan = "older-than" // Duration threshold
	FlagPath      = "path"       // Path filter
	FlagSort      = "sort"       // Sort field
	FlagSource    = "source"     // Log source filter
	FlagTag       = "tag"        // Tag-value filter
	FlagTo        = "to"         // Target path prefix

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
