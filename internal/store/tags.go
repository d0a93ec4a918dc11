// tags.go defines the in-memory tag list carried by every object.
//
// A tag-value is an ordered sequence of strings rather than a bare string,
// so ["public"] and ["public", "extra"] are different values. Matching is
// always exact structural equality; nothing here is case-folded or trimmed.

package store

import (
	"slices"
	"strconv"
	"strings"
)

// Tag is a single tag-value.
type Tag []string

// Public returns the publish marker tag-value ["public"]. An object carrying
// it is published. A fresh slice is returned on every call so callers cannot
// alter the marker for anyone else.
func Public() Tag {
	return Tag{"public"}
}

// Equal reports whether t and o hold the same strings in the same order.
func (t Tag) Equal(o Tag) bool {
	return slices.Equal(t, o)
}

// String renders the tag-value in JSON-like form, e.g. ["public"].
func (t Tag) String() string {
	parts := make([]string, len(t))
	for i, s := range t {
		parts[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tags is the ordered list of tag-values on an object.
type Tags []Tag

// Index returns the position of the first entry equal to t, or -1.
func (ts Tags) Index(t Tag) int {
	return slices.IndexFunc(ts, t.Equal)
}

// Contains reports whether any entry equals t.
func (ts Tags) Contains(t Tag) bool {
	return ts.Index(t) >= 0
}

// Find returns the first entry equal to t.
func (ts Tags) Find(t Tag) (Tag, bool) {
	if i := ts.Index(t); i >= 0 {
		return ts[i], true
	}
	return nil, false
}

// Append adds t after the existing entries. It follows the built-in append
// contract: the result may share storage with ts.
func (ts Tags) Append(t Tag) Tags {
	return append(ts, t)
}

// RemoveAll splits ts into the entries not equal to t (in their original
// relative order) and the entries that were removed. kept is always a new
// slice; ts itself is not modified.
func (ts Tags) RemoveAll(t Tag) (kept, removed Tags) {
	kept = make(Tags, 0, len(ts))
	for _, v := range ts {
		if v.Equal(t) {
			removed = append(removed, v)
			continue
		}
		kept = append(kept, v)
	}
	return kept, removed
}

// Clone returns a deep copy of ts.
func (ts Tags) Clone() Tags {
	if ts == nil {
		return nil
	}
	out := make(Tags, len(ts))
	for i, t := range ts {
		out[i] = slices.Clone(t)
	}
	return out
}

// Equal reports whether ts and o hold equal entries in the same order.
func (ts Tags) Equal(o Tags) bool {
	return slices.EqualFunc(ts, o, Tag.Equal)
}

// Strings converts ts to plain nested slices for encoding. A nil list
// becomes an empty one so it encodes as [] rather than null.
func (ts Tags) Strings() [][]string {
	out := make([][]string, len(ts))
	for i, t := range ts {
		out[i] = []string(t)
	}
	return out
}

// TagsFrom builds a tag list from plain nested slices.
func TagsFrom(v [][]string) Tags {
	out := make(Tags, len(v))
	for i, t := range v {
		out[i] = Tag(t)
	}
	return out
}
