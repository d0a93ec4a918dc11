// tags.go implements raw tag-value operations for the Service layer.
//
// Separated from publish.go because these operate on arbitrary tag-values
// with plain add/remove semantics. The publish marker is refused here so
// that publish state only changes through Publish and Unpublish, which own
// the conflict rules.

package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/publish"
	"github.com/jpl-au/pubd/internal/store"
	"github.com/jpl-au/pubd/internal/validate"
)

var (
	// ErrMarkerTag is returned when AddTag or RemoveTag is given the publish
	// marker.
	ErrMarkerTag = errors.New(`["public"] is the publish marker (use pubd publish / pubd unpublish)`)
	// ErrTagNotFound is returned by RemoveTag when no entry matches.
	ErrTagNotFound = errors.New("tag not found")
)

// AddTag appends tag to the object unless an equal tag-value is present,
// in which case the object is returned unchanged and nothing is saved.
// p can be an object path or a key.
func (s *Service) AddTag(ctx context.Context, p string, tag store.Tag, author string) (*store.Object, error) {
	if err := s.checkTag(tag); err != nil {
		return nil, fmt.Errorf("tag %q: %w", p, err)
	}
	o, err := s.resolveForUpdate(ctx, "tag", p, author)
	if err != nil {
		return nil, err
	}
	if o.Tags().Contains(tag) {
		return o, nil
	}
	o.SetTags(o.Tags().Append(tag))
	if err := o.Save(ctx); err != nil {
		return nil, fmt.Errorf("tag %q with %s: %w", o.Path, tag, err)
	}
	s.fireEvent(extension.TagEvent{Path: o.Path, Tag: tag, Added: true})
	return o, nil
}

// RemoveTag removes every tag-value equal to tag. Returns ErrTagNotFound if
// there is none. p can be an object path or a key.
func (s *Service) RemoveTag(ctx context.Context, p string, tag store.Tag, author string) (*store.Object, error) {
	if err := s.checkTag(tag); err != nil {
		return nil, fmt.Errorf("untag %q: %w", p, err)
	}
	o, err := s.resolveForUpdate(ctx, "untag", p, author)
	if err != nil {
		return nil, err
	}
	kept, removed := o.Tags().RemoveAll(tag)
	if len(removed) == 0 {
		return nil, fmt.Errorf("untag %s from %q: %w", tag, o.Path, ErrTagNotFound)
	}
	o.SetTags(kept)
	o.MarkModified(store.FieldTags)
	if err := o.Save(ctx); err != nil {
		return nil, fmt.Errorf("untag %s from %q: %w", tag, o.Path, err)
	}
	s.fireEvent(extension.TagEvent{Path: o.Path, Tag: tag, Added: false})
	return o, nil
}

func (s *Service) checkTag(tag store.Tag) error {
	if tag.Equal(publish.Marker()) {
		return ErrMarkerTag
	}
	return validate.Tag(tag)
}
