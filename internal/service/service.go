// Package service defines the shared interface for object operations.
// Commands and extensions depend on this interface rather than concrete
// implementations, enabling testing with mocks and future backend changes.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jpl-au/pubd/internal/store"
)

// Service defines all object operations.
//
// Extensions should use document.New() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
// Example:
//
//	svc, err := document.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	obj, err := svc.Publish(ctx, "docs/readme", "alice")
type Service interface {
	// Close releases database resources. Always defer this after New().
	Close() error

	// Get returns the object at path.
	// If includeDeleted is false, returns store.ErrNotFound for deleted objects.
	Get(ctx context.Context, path string, includeDeleted bool) (*store.Object, error)

	// ByKey retrieves an active object by its unique 8-char key.
	// Returns store.ErrNotFound if no object exists with that key.
	ByKey(ctx context.Context, key string) (*store.Object, error)

	// Resolve returns an object by path or key. Designed for user-facing entry
	// points where input could be either identifier type.
	//
	// For 8-character inputs it checks both path and key concurrently. Path
	// wins when both match. Non-8-character inputs are treated as paths only.
	Resolve(ctx context.Context, pathOrKey string, includeDeleted bool) (*store.Object, error)

	// List returns objects matching a path prefix.
	// Use "" for all objects. Set deletedOnly to list only deleted objects.
	List(ctx context.Context, prefix string, includeDeleted, deletedOnly bool) ([]*store.Object, error)

	// ListPublished returns active published objects under prefix.
	ListPublished(ctx context.Context, prefix string) ([]*store.Object, error)

	// Write creates the object at revision 1, or replaces its content and
	// bumps the revision. The returned bool reports whether it was created.
	Write(ctx context.Context, path, content, author string) (*store.Object, bool, error)

	// Publish adds the publish marker to the object. Failures are
	// *publish.Error values except for lookup errors.
	Publish(ctx context.Context, pathOrKey, author string) (*store.Object, error)

	// Unpublish removes every publish marker from the object.
	Unpublish(ctx context.Context, pathOrKey, author string) (*store.Object, error)

	// AddTag appends a tag-value unless an equal one is present.
	// The publish marker is rejected; use Publish.
	AddTag(ctx context.Context, pathOrKey string, tag store.Tag, author string) (*store.Object, error)

	// RemoveTag removes every tag-value equal to tag.
	// The publish marker is rejected; use Unpublish.
	RemoveTag(ctx context.Context, pathOrKey string, tag store.Tag, author string) (*store.Object, error)

	// Delete soft-deletes an object. It can be restored until vacuumed.
	Delete(ctx context.Context, pathOrKey string) (*store.Object, error)

	// Restore recovers a soft-deleted object with its tags intact.
	Restore(ctx context.Context, path string) (*store.Object, error)

	// Vacuum permanently removes soft-deleted objects.
	// olderThan filters by deletion time; nil means all deleted.
	Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error)

	// Stats returns aggregate counts for the database.
	Stats(ctx context.Context) (*store.Stats, error)

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// DB returns the underlying database connection for extensions.
	DB() *sql.DB

	// Tx runs fn in a transaction. Commits on nil, rolls back on error.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
}
