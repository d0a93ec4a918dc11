// write.go implements object creation, update, and deletion operations.
//
// Separated from service.go to isolate mutating operations. Extension events
// fire only after the store reports success.

package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/store"
)

// Write creates an object or replaces its content. Tags are left untouched,
// so rewriting a published object keeps it published.
func (s *Service) Write(ctx context.Context, path, content, author string) (*store.Object, bool, error) {
	if author == "" {
		author = DefaultAuthor
	}
	np, err := s.normalizePath(path)
	if err != nil {
		return nil, false, fmt.Errorf("write %q: %w", path, err)
	}
	path = np

	o, err := s.store.Get(ctx, path, false)
	switch {
	case errors.Is(err, store.ErrNotFound):
		o, err = s.store.Create(ctx, path, content, store.CreateOptions{
			Author:     author,
			MaxPath:    s.maxPath,
			MaxContent: s.maxContent,
		})
		if err != nil {
			return nil, false, fmt.Errorf("write %q: %w", path, err)
		}
		s.fireEvent(extension.ObjectWriteEvent{
			Path:     o.Path,
			Key:      o.Key,
			Revision: o.Revision,
			Author:   author,
			Created:  true,
		})
		return o, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("write %q: %w", path, err)
	}

	if o.Content == content {
		return o, false, nil
	}
	o.Content = content
	o.Author = author
	if err := o.Save(ctx); err != nil {
		return nil, false, fmt.Errorf("write %q: %w", path, err)
	}
	s.fireEvent(extension.ObjectWriteEvent{
		Path:     o.Path,
		Key:      o.Key,
		Revision: o.Revision,
		Author:   author,
	})
	return o, false, nil
}

// Delete soft-deletes an object. p can be a path or a key.
func (s *Service) Delete(ctx context.Context, p string) (*store.Object, error) {
	o, err := s.Resolve(ctx, p, false)
	if err != nil {
		return nil, fmt.Errorf("delete %q: %w", p, err)
	}
	if err := s.store.Delete(ctx, o.Path, store.DeleteOptions{MaxPath: s.maxPath}); err != nil {
		return nil, fmt.Errorf("delete %q: %w", o.Path, err)
	}
	s.fireEvent(extension.ObjectDeleteEvent{Path: o.Path})
	return o, nil
}

// Restore recovers a soft-deleted object. Its tags, publish marker included,
// come back as they were at deletion.
func (s *Service) Restore(ctx context.Context, p string) (*store.Object, error) {
	np, err := s.normalizePath(p)
	if err != nil {
		return nil, fmt.Errorf("restore %q: %w", p, err)
	}
	p = np
	if err := s.store.Restore(ctx, p, store.RestoreOptions{MaxPath: s.maxPath}); err != nil {
		return nil, fmt.Errorf("restore %q: %w", p, err)
	}
	o, err := s.store.Get(ctx, p, false)
	if err != nil {
		return nil, fmt.Errorf("restore %q: %w", p, err)
	}
	s.fireEvent(extension.ObjectRestoreEvent{Path: p})
	return o, nil
}
