// transfer.go implements "pubd import" and "pubd export", moving objects
// between the store and .md files on disk.

package object

import (
	"fmt"
	"io"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/exporter"
	"github.com/jpl-au/pubd/internal/importer"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <filesystem-path>",
		Short: "Import markdown files as objects",
		Long: `Import a .md file, or every .md file below a directory, as objects.

Each file becomes the object at its relative path without the extension.
With --publish every imported object is also published; objects that are
already published are left as they are.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().StringP(extension.FlagTo, "t", "", "Target path prefix")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	c.Flags().BoolP(extension.FlagIncludeHidden, "H", false, "Include hidden files/dirs")
	c.Flags().BoolP(extension.FlagPublish, "p", false, "Publish imported objects")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	src := args[0]
	opts := importer.Options{Author: cmd.Author()}
	opts.Prefix, _ = c.Flags().GetString(extension.FlagTo)
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	opts.Hidden, _ = c.Flags().GetBool(extension.FlagIncludeHidden)
	opts.Publish, _ = c.Flags().GetBool(extension.FlagPublish)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := importer.Run(c.Context(), w, e.svc, src, opts)
	log.Event("object:import", "import").
		Author(opts.Author).
		Path(src).
		Detail("prefix", opts.Prefix).
		Detail("dry_run", opts.DryRun).
		Detail("imported", result.Imported).
		Detail("published", result.Published).
		Detail("already_published", result.AlreadyPublished).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}

	if !cmd.JSON() && !opts.DryRun {
		fmt.Fprintf(cmd.Out(), "Imported %d objects", result.Imported)
		if opts.Publish {
			fmt.Fprintf(cmd.Out(), ", published %d", result.Published)
		}
		if result.AlreadyPublished > 0 {
			fmt.Fprintf(cmd.Out(), " (%d already published)", result.AlreadyPublished)
		}
		fmt.Fprintln(cmd.Out())
	}
	return cmd.PrintJSON(result)
}

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <filesystem-path> [prefix]",
		Short: "Export objects as markdown files",
		Long: `Write objects under prefix to .md files below filesystem-path.

With --published only published objects are written, which produces the
public view of the store. Existing files are kept unless --force is set.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runExport,
	}
	c.Flags().BoolP(extension.FlagPublished, "p", false, "Export published objects only")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst := args[0]
	opts := exporter.Options{Force: cmd.Force()}
	if len(args) > 1 {
		opts.Prefix = args[1]
	}
	opts.Published, _ = c.Flags().GetBool(extension.FlagPublished)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := exporter.Run(c.Context(), w, e.svc, dst, opts)
	log.Event("object:export", "export").
		Author(cmd.Author()).
		Path(opts.Prefix).
		Detail("dest", dst).
		Detail("published", opts.Published).
		Detail("exported", result.Exported).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export to %q: %w", dst, err))
	}
	return cmd.PrintJSON(result)
}
