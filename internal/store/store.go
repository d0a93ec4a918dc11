// Package store defines object persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// ObjectJSON is the API-friendly representation of an Object. It uses RFC3339
// timestamps and allows optional content omission for bandwidth efficiency.
type ObjectJSON struct {
	Key       string     `json:"key"`
	Path      string     `json:"path"`
	Content   string     `json:"content,omitempty"`
	Revision  int        `json:"revision"`
	Author    string     `json:"author"`
	Tags      [][]string `json:"tags"`
	Published bool       `json:"published"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
	Deleted   bool       `json:"deleted,omitempty"`
}

// ToJSON converts an Object to its API representation. The content parameter
// controls whether to include object content, allowing efficient listings.
func (o *Object) ToJSON(content bool) ObjectJSON {
	j := ObjectJSON{
		Key:       o.Key,
		Path:      o.Path,
		Revision:  o.Revision,
		Author:    o.Author,
		Tags:      o.tags.Strings(),
		Published: o.Published(),
		CreatedAt: time.Unix(o.CreatedAt, 0).UTC().Format(time.RFC3339),
		UpdatedAt: time.Unix(o.UpdatedAt, 0).UTC().Format(time.RFC3339),
		Deleted:   o.DeletedAt != nil,
	}
	if content {
		j.Content = o.Content
	}
	return j
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Limits bounds what a save may persist. Zero values mean no limit.
type Limits struct {
	MaxPath    int
	MaxContent int64
	MaxTags    int
}

// CreateOptions configures a create operation.
type CreateOptions struct {
	Author     string
	MaxPath    int   // 0 means no limit (not recommended for writes)
	MaxContent int64 // 0 means no limit (not recommended for writes)
}

// DeleteOptions configures a delete operation.
type DeleteOptions struct {
	MaxPath int
}

// RestoreOptions configures a restore operation.
type RestoreOptions struct {
	MaxPath int
}

// Stats provides aggregate database statistics for capacity planning and
// operational visibility.
type Stats struct {
	Objects   int64 // Active (non-deleted) object count
	Deleted   int64 // Soft-deleted objects pending vacuum
	Published int64 // Active objects carrying the publish marker
	TagValues int64 // Tag-values across active objects
	Authors   int64 // Distinct authors who have written objects
	OldestAt  int64 // Unix timestamp of earliest object
	NewestAt  int64 // Unix timestamp of most recent save
}
