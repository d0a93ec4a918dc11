// read.go implements object retrieval operations for the Service layer.
//
// Separated from service.go to isolate read-only operations. The Service
// layer adds path normalisation on top of the raw store operations, ensuring
// consistent path handling across all entry points.
//
// All paths are normalised before reaching the store, so "docs/readme" and
// "docs//readme" name the same object.

package document

import (
	"context"
	"sync"

	"github.com/jpl-au/pubd/internal/store"
)

// Get retrieves the object at path.
func (s *Service) Get(ctx context.Context, p string, includeDeleted bool) (*store.Object, error) {
	p, err := s.normalizePath(p)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, p, includeDeleted)
}

// ByKey retrieves an object by its unique 8-char key.
func (s *Service) ByKey(ctx context.Context, key string) (*store.Object, error) {
	return s.store.ByKey(ctx, key)
}

// Resolve returns an object by path or key. Designed for user-facing entry
// points such as CLI commands, MCP tools and HTTP routes where input could be
// either type.
//
// Users see keys in pubd ls output and naturally want to use them with other
// commands. An 8-character string like "my-notes" could be either a valid
// path or a key, so both are checked and the path takes precedence.
//
// SQLite in WAL mode supports concurrent reads, so both lookups run in
// parallel.
func (s *Service) Resolve(ctx context.Context, pathOrKey string, includeDeleted bool) (*store.Object, error) {
	// Keys are always exactly 8 characters.
	if len(pathOrKey) != 8 {
		return s.Get(ctx, pathOrKey, includeDeleted)
	}

	var pathObj, keyObj *store.Object
	var pathErr, keyErr error

	var wg sync.WaitGroup
	wg.Go(func() {
		pathObj, pathErr = s.Get(ctx, pathOrKey, includeDeleted)
	})
	wg.Go(func() {
		keyObj, keyErr = s.ByKey(ctx, pathOrKey)
	})
	wg.Wait()

	if pathErr == nil {
		return pathObj, nil
	}
	if keyErr == nil {
		return keyObj, nil
	}
	// Both failed. The path error reads better.
	return nil, pathErr
}

// List returns objects matching a prefix.
func (s *Service) List(ctx context.Context, prefix string, includeDeleted, deletedOnly bool) ([]*store.Object, error) {
	prefix, err := s.normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, prefix, includeDeleted, deletedOnly)
}

// ListPublished returns active objects under prefix that carry the publish
// marker.
func (s *Service) ListPublished(ctx context.Context, prefix string) ([]*store.Object, error) {
	prefix, err := s.normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return s.store.ListPublished(ctx, prefix)
}
