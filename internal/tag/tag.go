// Package tag provides object tagging operations for the CLI layer.
//
// This package orchestrates tag add/remove/list operations, handling both
// the service calls and output formatting. A tag-value is a sequence of
// strings; the publish marker ["public"] is reserved for pubd publish.

package tag

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/pubd/internal/service"
	"github.com/jpl-au/pubd/internal/store"
)

// Result contains the outcome of a tag operation.
type Result struct {
	Path     string     `json:"path,omitempty"`
	Tag      []string   `json:"tag,omitempty"`
	Action   string     `json:"action,omitempty"`
	Revision int        `json:"revision,omitempty"`
	Tags     [][]string `json:"tags"`
}

// Parse builds a tag-value from command arguments. A single argument that
// starts with "[" is decoded as a JSON array of strings; otherwise each
// argument is one element, so `lang go` becomes ["lang", "go"].
func Parse(args []string) (store.Tag, error) {
	if len(args) == 1 && strings.HasPrefix(strings.TrimSpace(args[0]), "[") {
		var t []string
		if err := json.Unmarshal([]byte(args[0]), &t); err != nil {
			return nil, fmt.Errorf("parse tag %s: %w", args[0], err)
		}
		return store.Tag(t), nil
	}
	return store.Tag(args), nil
}

// ParseFilter parses a single flag value into a tag-value: a JSON array,
// or comma separated elements ("lang,go").
func ParseFilter(s string) (store.Tag, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "[") {
		return Parse([]string{s})
	}
	return store.Tag(strings.Split(s, ",")), nil
}

// Add adds a tag-value to an object.
func Add(ctx context.Context, w io.Writer, svc service.Service, path string, t store.Tag, author string) (Result, error) {
	result := Result{Path: path, Tag: t, Action: "add"}

	o, err := svc.AddTag(ctx, path, t, author)
	if err != nil {
		return result, err
	}
	result.Path = o.Path
	result.Revision = o.Revision
	result.Tags = o.Tags().Strings()

	fmt.Fprintf(w, "Added tag %s to %s\n", t, o.Path)
	return result, nil
}

// Remove removes every equal tag-value from an object.
func Remove(ctx context.Context, w io.Writer, svc service.Service, path string, t store.Tag, author string) (Result, error) {
	result := Result{Path: path, Tag: t, Action: "remove"}

	o, err := svc.RemoveTag(ctx, path, t, author)
	if err != nil {
		return result, err
	}
	result.Path = o.Path
	result.Revision = o.Revision
	result.Tags = o.Tags().Strings()

	fmt.Fprintf(w, "Removed tag %s from %s\n", t, o.Path)
	return result, nil
}

// List prints the tag-values of an object, one per line, in stored order.
func List(ctx context.Context, w io.Writer, svc service.Service, path string) (Result, error) {
	result := Result{Path: path}

	o, err := svc.Resolve(ctx, path, false)
	if err != nil {
		return result, err
	}
	result.Path = o.Path
	result.Revision = o.Revision
	result.Tags = o.Tags().Strings()

	for _, t := range o.Tags() {
		fmt.Fprintln(w, t)
	}
	return result, nil
}
