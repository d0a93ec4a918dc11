// publish.go resolves user input to an object and hands it to the publish
// package. Lookup failures are ordinary wrapped errors; everything after the
// lookup is a *publish.Error returned unchanged so its message stays
// verbatim for transports.

package document

import (
	"context"
	"fmt"

	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/publish"
	"github.com/jpl-au/pubd/internal/store"
)

// Publish adds the publish marker to the object at pathOrKey.
func (s *Service) Publish(ctx context.Context, pathOrKey, author string) (*store.Object, error) {
	o, err := s.resolveForUpdate(ctx, "publish", pathOrKey, author)
	if err != nil {
		return nil, err
	}
	o, err = publish.Publish(ctx, o)
	if err != nil {
		return nil, err
	}
	s.firePublish(o, true)
	return o, nil
}

// Unpublish removes the publish marker from the object at pathOrKey.
func (s *Service) Unpublish(ctx context.Context, pathOrKey, author string) (*store.Object, error) {
	o, err := s.resolveForUpdate(ctx, "unpublish", pathOrKey, author)
	if err != nil {
		return nil, err
	}
	o, err = publish.Unpublish(ctx, o)
	if err != nil {
		return nil, err
	}
	s.firePublish(o, false)
	return o, nil
}

// resolveForUpdate loads an active object and stamps the author that the
// next save will record.
func (s *Service) resolveForUpdate(ctx context.Context, op, pathOrKey, author string) (*store.Object, error) {
	o, err := s.Resolve(ctx, pathOrKey, false)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", op, pathOrKey, err)
	}
	if author == "" {
		author = DefaultAuthor
	}
	o.Author = author
	return o, nil
}

func (s *Service) firePublish(o *store.Object, published bool) {
	s.fireEvent(extension.PublishEvent{
		Path:      o.Path,
		Key:       o.Key,
		Revision:  o.Revision,
		Author:    o.Author,
		Published: published,
	})
}
