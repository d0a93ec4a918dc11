// object.go defines the persisted Object and its change tracking.
//
// Objects loaded from a store are bound to it and can save themselves.
// Change tracking mirrors document mappers: a field is persisted when it was
// flagged with MarkModified, or when its value differs from the snapshot
// taken at load. Appends are caught by the snapshot comparison; in-place
// rewrites of nested values should be flagged explicitly.

package store

import (
	"context"
	"errors"
	"slices"
)

// Field names understood by MarkModified.
const (
	FieldContent = "content"
	FieldTags    = "tags"
)

// ErrDetached is returned when Save is called on an object that was not
// loaded from, or attached to, a store.
var ErrDetached = errors.New("object is not attached to a store")

// Saver persists an object. SQLiteStore is the production implementation.
type Saver interface {
	Save(ctx context.Context, o *Object) error
}

// Object is a single stored object. Exported fields are plain data; the tag
// list is reached through Tags and SetTags so that change tracking stays
// consistent.
type Object struct {
	ID        int64  // Database primary key (internal)
	Key       string // Unique 8-char identifier
	Path      string // Object path (e.g., "docs/readme")
	Content   string // Full object content
	Revision  int    // Incremented on every successful save
	Author    string // Who last saved this object
	CreatedAt int64  // Unix timestamp of creation
	UpdatedAt int64  // Unix timestamp of last save
	DeletedAt *int64 // Unix timestamp of deletion, nil if not deleted

	tags Tags

	// State as last loaded or saved, used to detect unflagged changes.
	savedTags    Tags
	savedContent string
	modified     map[string]bool

	saver Saver
}

// NewObject returns a detached object. Attach a Saver before calling Save.
func NewObject(path, content string, tags Tags) *Object {
	o := &Object{Path: path, Content: content, tags: tags}
	o.markSaved()
	return o
}

// Tags returns the current tag list. The returned slice is the object's own
// storage, not a copy.
func (o *Object) Tags() Tags {
	return o.tags
}

// SetTags replaces the tag list.
func (o *Object) SetTags(t Tags) {
	o.tags = t
}

// Published reports whether the tag list carries the publish marker.
func (o *Object) Published() bool {
	return o.tags.Contains(Public())
}

// MarkModified flags a field as changed so the next Save persists it even
// when the snapshot comparison would miss the change.
func (o *Object) MarkModified(field string) {
	if o.modified == nil {
		o.modified = make(map[string]bool)
	}
	o.modified[field] = true
}

// IsModified reports whether a field will be written by the next Save.
func (o *Object) IsModified(field string) bool {
	if o.modified[field] {
		return true
	}
	switch field {
	case FieldTags:
		return !o.tags.Equal(o.savedTags)
	case FieldContent:
		return o.Content != o.savedContent
	}
	return false
}

// Modified returns the fields the next Save will write, in a stable order.
func (o *Object) Modified() []string {
	var fields []string
	for _, f := range []string{FieldContent, FieldTags} {
		if o.IsModified(f) {
			fields = append(fields, f)
		}
	}
	for f := range o.modified {
		if !slices.Contains(fields, f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Attach binds the object to a Saver.
func (o *Object) Attach(s Saver) {
	o.saver = s
}

// Save persists pending changes through the attached Saver. On success the
// change-tracking snapshot is reset; on failure the in-memory object keeps
// its changes.
func (o *Object) Save(ctx context.Context) error {
	if o.saver == nil {
		return ErrDetached
	}
	if err := o.saver.Save(ctx, o); err != nil {
		return err
	}
	o.markSaved()
	return nil
}

// markSaved records the current state as persisted.
func (o *Object) markSaved() {
	o.savedTags = o.tags.Clone()
	o.savedContent = o.Content
	o.modified = nil
}
