// read.go implements object retrieval operations for the SQLite store.
//
// Separated from the main store file to isolate read-only query logic. These
// operations never modify data. Every object returned is bound to the store
// with a fresh change-tracking snapshot.

package store

import (
	"context"
	"fmt"
	"strings"
)

// pathPrefix matches rows whose path starts with the bound prefix. LIKE would
// treat % and _ as wildcards and fold ASCII case.
const pathPrefix = `substr(path, 1, length(?)) = ?`

// Get returns the object at the given path. The includeDeleted flag enables
// reading soft-deleted objects for recovery workflows.
func (s *SQLiteStore) Get(ctx context.Context, path string, includeDeleted bool) (*Object, error) {
	query := `SELECT ` + objectColumns + ` FROM objects WHERE path = ?`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	return s.scanObject(s.db.QueryRowContext(ctx, query, path))
}

// ByKey retrieves an active object by its 8-character unique key.
func (s *SQLiteStore) ByKey(ctx context.Context, key string) (*Object, error) {
	query := `SELECT ` + objectColumns + ` FROM objects WHERE key = ? AND deleted_at IS NULL`
	return s.scanObject(s.db.QueryRowContext(ctx, query, key))
}

// List returns all objects matching a path prefix, ordered by path.
func (s *SQLiteStore) List(ctx context.Context, prefix string, includeDeleted, deletedOnly bool) ([]*Object, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + objectColumns + ` FROM objects`)

	var args []any
	var conditions []string

	if prefix != "" {
		conditions = append(conditions, pathPrefix)
		args = append(args, prefix, prefix)
	}

	switch {
	case deletedOnly:
		conditions = append(conditions, `deleted_at IS NOT NULL`)
	case !includeDeleted:
		conditions = append(conditions, `deleted_at IS NULL`)
	}

	if len(conditions) > 0 {
		b.WriteString(` WHERE `)
		b.WriteString(strings.Join(conditions, ` AND `))
	}
	b.WriteString(` ORDER BY path`)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer rows.Close()

	return s.scanObjects(rows)
}

// ListPublished returns active objects under prefix that carry the publish
// marker. The tags column is JSON, so a LIKE pre-filter narrows the scan and
// the exact structural match is done on the decoded list.
func (s *SQLiteStore) ListPublished(ctx context.Context, prefix string) ([]*Object, error) {
	query := `SELECT ` + objectColumns + ` FROM objects WHERE deleted_at IS NULL AND tags LIKE ?`
	args := []any{`%["public"]%`}
	if prefix != "" {
		query += ` AND ` + pathPrefix
		args = append(args, prefix, prefix)
	}
	query += ` ORDER BY path`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list published: %w", err)
	}
	defer rows.Close()

	objs, err := s.scanObjects(rows)
	if err != nil {
		return nil, err
	}

	out := objs[:0]
	for _, o := range objs {
		if o.Published() {
			out = append(out, o)
		}
	}
	return out, nil
}
