// vacuum.go implements permanent deletion of soft-deleted objects.
//
// Separated because vacuum is a destructive, irreversible operation with
// different semantics than soft-delete. The olderThan parameter keeps recent
// deletions recoverable while cleaning up old trash.

package store

import (
	"context"
	"fmt"
	"time"
)

// Vacuum permanently removes soft-deleted objects.
// Parameters:
//   - olderThan: if non-nil, only delete objects deleted before this duration ago
//   - path: if non-empty, only delete objects matching this path prefix
//
// Returns the number of objects removed.
func (s *SQLiteStore) Vacuum(ctx context.Context, olderThan *time.Duration, path string) (int64, error) {
	query := `DELETE FROM objects WHERE deleted_at IS NOT NULL`
	var args []any
	if olderThan != nil {
		query += ` AND deleted_at < ?`
		args = append(args, time.Now().Add(-*olderThan).Unix())
	}
	if path != "" {
		query += ` AND ` + pathPrefix
		args = append(args, path, path)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("vacuum objects: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("vacuum objects: %w", err)
	}
	return n, nil
}
