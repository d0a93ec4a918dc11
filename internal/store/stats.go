// stats.go implements aggregate queries for operational visibility.
//
// Counts that depend on tag structure (published objects, tag-values) are
// computed from the decoded tag lists rather than in SQL, so they use the
// same exact-match rule as publish and unpublish.

package store

import (
	"context"
	"fmt"
)

// Stats returns aggregate database statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM objects WHERE deleted_at IS NULL`).Scan(&st.Objects)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM objects WHERE deleted_at IS NOT NULL`).Scan(&st.Deleted)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT author) FROM objects`).Scan(&st.Authors)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COALESCE(MIN(created_at), 0), COALESCE(MAX(updated_at), 0) FROM objects`).Scan(&st.OldestAt, &st.NewestAt)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT path, tags FROM objects WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var path, raw string
		if err := rows.Scan(&path, &raw); err != nil {
			return nil, err
		}
		t, err := decodeTags(raw)
		if err != nil {
			return nil, fmt.Errorf("decode tags for %s: %w", path, err)
		}
		st.TagValues += int64(len(t))
		if t.Contains(Public()) {
			st.Published++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &st, nil
}
