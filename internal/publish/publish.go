// Package publish toggles an object's published state.
//
// An object is published when its tag list contains the marker ["public"]
// (see store.Public). Publish appends the marker and saves; Unpublish removes
// every occurrence and saves. Each refuses with a 409 conflict when the
// object is already in the requested state, and reports any save failure as
// a 400 carrying the save error's message.
//
// The object is mutated in place. A failed save does not roll the tag change
// back: the caller's copy keeps the new tags while the stored copy keeps the
// old ones. Reload the object if that matters.
//
// Nothing here serialises concurrent callers. Two publishers racing on the
// same object both pass the membership check and the store keeps whichever
// save lands last.
package publish

import (
	"context"

	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/store"
)

// Object is anything with a tag list that can save itself.
// *store.Object implements it.
type Object interface {
	Tags() store.Tags
	SetTags(store.Tags)
	MarkModified(field string)
	Save(ctx context.Context) error
}

// Marker returns the publish marker tag-value.
func Marker() store.Tag {
	return store.Public()
}

// Published reports whether o carries the publish marker.
func Published(o Object) bool {
	return o.Tags().Contains(Marker())
}

// Publish adds the publish marker to o and saves it.
//
// Returns a conflict error (409, MsgAlreadyPublished) if o already carries
// the marker, leaving its tags untouched. Returns a persistence error (400)
// if the save fails; o keeps the appended marker in that case.
func Publish[T Object](ctx context.Context, o T) (T, error) {
	var zero T

	tags := o.Tags()
	if found, ok := tags.Find(Marker()); ok {
		err := conflict(MsgAlreadyPublished)
		log.Event("publish:conflict", "publish").
			Detail("marker", []string(found)).
			Write(err)
		return zero, err
	}

	o.SetTags(tags.Append(Marker()))

	if err := o.Save(ctx); err != nil {
		return zero, persistence(err)
	}
	return o, nil
}

// Unpublish removes every occurrence of the publish marker from o and saves
// it. Other tag-values keep their relative order.
//
// Returns a conflict error (409, MsgAlreadyUnpublished) if o carries no
// marker. Returns a persistence error (400) if the save fails; o keeps the
// reduced tag list in that case.
func Unpublish[T Object](ctx context.Context, o T) (T, error) {
	var zero T

	kept, removed := o.Tags().RemoveAll(Marker())
	if len(removed) == 0 {
		err := conflict(MsgAlreadyUnpublished)
		log.Event("publish:conflict", "unpublish").
			Detail("removed", removed.Strings()).
			Write(err)
		return zero, err
	}

	o.SetTags(kept)
	o.MarkModified(store.FieldTags)

	if err := o.Save(ctx); err != nil {
		return zero, persistence(err)
	}
	return o, nil
}
