// write.go implements object creation and modification operations.
//
// Objects are updated in place; each successful save bumps the revision.
// There is no compare-and-swap on revision: concurrent saves of the same
// object are last-write-wins.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jpl-au/pubd/internal/validate"
)

// Create inserts a new object at revision 1 with an empty tag list.
func (s *SQLiteStore) Create(ctx context.Context, path, content string, opts CreateOptions) (*Object, error) {
	path, err := validate.Path(path, opts.MaxPath)
	if err != nil {
		return nil, err
	}
	if err := validate.Content(content, opts.MaxContent); err != nil {
		return nil, err
	}

	var o *Object
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var n int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM objects WHERE path = ?`, path).Scan(&n)
		if err != nil {
			return fmt.Errorf("check existing: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("%s: %w", path, ErrAlreadyExists)
		}

		id, err := genID()
		if err != nil {
			return err
		}

		now := time.Now().Unix()
		res, err := tx.ExecContext(ctx, `INSERT INTO objects (key, path, content, revision, author, tags, created_at, updated_at)
			VALUES (?, ?, ?, 1, ?, '[]', ?, ?)`,
			id, path, content, opts.Author, now, now)
		if err != nil {
			return fmt.Errorf("insert object: %w", err)
		}
		rowID, _ := res.LastInsertId()

		o = &Object{
			ID:        rowID,
			Key:       id,
			Path:      path,
			Content:   content,
			Revision:  1,
			Author:    opts.Author,
			CreatedAt: now,
			UpdatedAt: now,
			tags:      Tags{},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.markSaved()
	o.Attach(s)
	return o, nil
}

// Save persists the modified fields of o. Only fields reported by
// o.IsModified are written; a save with nothing modified is a no-op.
// On success o.Revision and o.UpdatedAt reflect the stored row.
//
// Save does not reset o's change tracking. Object.Save does that once this
// returns nil.
func (s *SQLiteStore) Save(ctx context.Context, o *Object) error {
	writeContent := o.IsModified(FieldContent)
	writeTags := o.IsModified(FieldTags)
	if !writeContent && !writeTags {
		return nil
	}

	if writeContent {
		if err := validate.Content(o.Content, s.limits.MaxContent); err != nil {
			return err
		}
	}

	set := `revision = revision + 1, updated_at = ?, author = ?`
	args := []any{time.Now().Unix(), o.Author}
	if writeContent {
		set += `, content = ?`
		args = append(args, o.Content)
	}
	if writeTags {
		if err := validate.Tags(o.tags.Strings(), s.limits.MaxTags); err != nil {
			return err
		}
		enc, err := encodeTags(o.tags)
		if err != nil {
			return err
		}
		set += `, tags = ?`
		args = append(args, enc)
	}
	args = append(args, o.Key)

	err := s.db.QueryRowContext(ctx,
		`UPDATE objects SET `+set+` WHERE key = ? AND deleted_at IS NULL RETURNING revision, updated_at`,
		args...).Scan(&o.Revision, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("save %s: %w", o.Path, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", o.Path, err)
	}
	return nil
}

// Delete soft-deletes an object by setting its deleted_at timestamp.
// Returns ErrNotFound if the object doesn't exist or is already deleted.
func (s *SQLiteStore) Delete(ctx context.Context, path string, opts DeleteOptions) error {
	path, err := validate.Path(path, opts.MaxPath)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `UPDATE objects SET deleted_at = ? WHERE path = ? AND deleted_at IS NULL`,
		time.Now().Unix(), path)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore un-deletes a soft-deleted object by clearing deleted_at. Tags,
// including the publish marker, come back exactly as they were.
func (s *SQLiteStore) Restore(ctx context.Context, path string, opts RestoreOptions) error {
	path, err := validate.Path(path, opts.MaxPath)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `UPDATE objects SET deleted_at = NULL WHERE path = ? AND deleted_at IS NOT NULL`, path)
	if err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
