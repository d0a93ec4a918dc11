// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and tree rendering.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jpl-au/pubd/internal/store"
)

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// state returns the short status shown next to a path.
func state(o *store.Object) string {
	switch {
	case o.DeletedAt != nil:
		return "[deleted] "
	case o.Published():
		return "[public] "
	}
	return ""
}

// List prints objects in simple list format.
func List(w io.Writer, objs []*store.Object) error {
	for _, o := range objs {
		fmt.Fprintf(w, "%s  %s%s\n", o.Key, state(o), o.Path)
	}
	return nil
}

// Long prints objects in long format.
//
// Column order is REV, KEY, PUB, SIZE, TAGS, UPDATED, AUTHOR, PATH. Fixed-width
// columns come first so they align; AUTHOR and PATH vary and go last.
func Long(w io.Writer, objs []*store.Object) error {
	if len(objs) == 0 {
		return nil
	}

	maxAuthor := 6 // minimum "AUTHOR"
	for _, o := range objs {
		if n := len(author(o)); n > maxAuthor {
			maxAuthor = n
		}
	}

	fmt.Fprintf(w, "%4s  %-8s  %3s  %6s  %4s  %-16s  %-*s  %s\n",
		"REV", "KEY", "PUB", "SIZE", "TAGS", "UPDATED", maxAuthor, "AUTHOR", "PATH")

	for _, o := range objs {
		pub := "-"
		if o.Published() {
			pub = "yes"
		}
		updated := time.Unix(o.UpdatedAt, 0).Format("2006-01-02 15:04")
		deleted := ""
		if o.DeletedAt != nil {
			deleted = " [deleted]"
		}
		fmt.Fprintf(w, "%4d  %s  %3s  %6s  %4d  %s  %-*s  %s%s\n",
			o.Revision, o.Key, pub, humanSize(int64(len(o.Content))), len(o.Tags()),
			updated, maxAuthor, author(o), o.Path, deleted)
	}
	return nil
}

func author(o *store.Object) string {
	if o.Author == "" {
		return "-"
	}
	return o.Author
}

// Tree prints objects as a directory tree.
func Tree(w io.Writer, objs []*store.Object) error {
	if len(objs) == 0 {
		return nil
	}

	type node struct {
		name      string
		children  map[string]*node
		isObject  bool
		deleted   bool
		published bool
	}

	root := &node{children: make(map[string]*node)}

	for _, o := range objs {
		parts := strings.Split(o.Path, "/")
		current := root

		for i, part := range parts {
			if current.children[part] == nil {
				current.children[part] = &node{
					name:     part,
					children: make(map[string]*node),
				}
			}
			current = current.children[part]
			if i == len(parts)-1 {
				current.isObject = true
				current.deleted = o.DeletedAt != nil
				current.published = o.Published()
			}
		}
	}

	var printNode func(n *node, prefix string)
	printNode = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector := "├── "
			if last {
				connector = "└── "
			}

			suffix := ""
			if !child.isObject && len(child.children) > 0 {
				suffix = "/"
			}
			switch {
			case child.deleted:
				suffix += " [deleted]"
			case child.published:
				suffix += " [public]"
			}

			fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, name, suffix)

			pfx := prefix
			if last {
				pfx += "    "
			} else {
				pfx += "│   "
			}

			if len(child.children) > 0 {
				printNode(child, pfx)
			}
		}
	}

	printNode(root, "")
	return nil
}

// Paths prints just object paths, one per line.
func Paths(w io.Writer, objs []*store.Object) error {
	for _, o := range objs {
		fmt.Fprintln(w, o.Path)
	}
	return nil
}

// Stats prints database statistics as aligned label/value rows.
func Stats(w io.Writer, st *store.Stats) error {
	rows := []struct {
		label string
		value string
	}{
		{"Objects", fmt.Sprint(st.Objects)},
		{"Published", fmt.Sprint(st.Published)},
		{"Deleted", fmt.Sprint(st.Deleted)},
		{"Tag-values", fmt.Sprint(st.TagValues)},
		{"Authors", fmt.Sprint(st.Authors)},
		{"Oldest", timestamp(st.OldestAt)},
		{"Newest", timestamp(st.NewestAt)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-10s  %s\n", r.label, r.value)
	}
	return nil
}

func timestamp(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04")
}
