// interfaces.go defines the storage abstraction for object persistence.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are granular (Reader, Writer,
// Maintainer) so consumers only depend on the capabilities they need.
//
// Design: Deletes are soft. Objects are marked deleted and can be recovered
// until Vacuum permanently purges them.

package store

import (
	"context"
	"database/sql"
	"time"
)

// Reader defines read-only operations for retrieving objects.
type Reader interface {
	// Get retrieves an object by path. Use includeDeleted to reach
	// soft-deleted objects for recovery.
	Get(ctx context.Context, path string, includeDeleted bool) (*Object, error)

	// ByKey retrieves an object by its unique 8-char key. Returns ErrNotFound
	// if no object exists with that key.
	ByKey(ctx context.Context, key string) (*Object, error)

	// List returns objects matching a path prefix. The deletedOnly flag
	// enables listing trash contents separately from active objects.
	List(ctx context.Context, prefix string, includeDeleted, deletedOnly bool) ([]*Object, error)

	// ListPublished returns active objects under prefix that carry the
	// publish marker.
	ListPublished(ctx context.Context, prefix string) ([]*Object, error)

	// Stats returns aggregate database statistics.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that modify objects.
type Writer interface {
	// Create inserts a new object at revision 1 with an empty tag list.
	// Returns ErrAlreadyExists if the path is taken.
	Create(ctx context.Context, path, content string, opts CreateOptions) (*Object, error)

	// Save persists the modified fields of a loaded object. Last write wins.
	Save(ctx context.Context, o *Object) error

	// Delete marks an object as deleted without removing data.
	Delete(ctx context.Context, path string, opts DeleteOptions) error

	// Restore recovers a soft-deleted object to active status.
	Restore(ctx context.Context, path string, opts RestoreOptions) error
}

// Maintainer defines operations for database maintenance and lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for extensions needing custom tables.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Vacuum permanently removes soft-deleted data.
	Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error)
}

// Store defines the persistence interface for objects.
type Store interface {
	Reader
	Writer
	Maintainer
	Saver
}
