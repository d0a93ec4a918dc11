// sqlite_ops.go opens the SQLite database and holds the connection-level
// operations. It is the only store file importing the driver.

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the Store backed by one SQLite file. Objects it returns
// are bound to it and save back through Save.
type SQLiteStore struct {
	db     *sql.DB
	limits Limits
}

var _ Store = (*SQLiteStore)(nil)

// pragmas run on open: WAL lets HTTP and MCP readers proceed during a
// publish, and NORMAL sync is durable enough under WAL.
var pragmas = []struct{ name, stmt string }{
	{"WAL mode", `PRAGMA journal_mode=WAL`},
	{"busy timeout", `PRAGMA busy_timeout=5000`},
	{"synchronous mode", `PRAGMA synchronous=NORMAL`},
}

// Open opens the database at path. The caller must Close it.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting %s: %w", p.name, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Init applies any schema migrations the database has not seen yet. It is
// safe to call on every open.
func (s *SQLiteStore) Init() error {
	return migrate(context.Background(), s.db)
}

// Checkpoint flushes the WAL into the database file and truncates it, so a
// closed store leaves no -wal or -shm files behind.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// SetLimits configures the bounds Save enforces. Zero fields mean no limit.
func (s *SQLiteStore) SetLimits(l Limits) {
	s.limits = l
}

// Close releases the connection pool.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// objectColumns is the column list every object query selects, in scan order.
const objectColumns = `id, key, path, content, revision, author, tags, created_at, updated_at, deleted_at`

// scanObj extracts an Object from a database row, decoding the tag list and
// binding the object to this store so it can save itself.
func (s *SQLiteStore) scanObj(sc scanner) (*Object, error) {
	var o Object
	var tags string
	var del sql.NullInt64

	err := sc.Scan(&o.ID, &o.Key, &o.Path, &o.Content, &o.Revision, &o.Author, &tags, &o.CreatedAt, &o.UpdatedAt, &del)
	if err != nil {
		return nil, err
	}

	t, err := decodeTags(tags)
	if err != nil {
		return nil, fmt.Errorf("decode tags for %s: %w", o.Path, err)
	}
	o.tags = t
	if del.Valid {
		o.DeletedAt = &del.Int64
	}
	o.markSaved()
	o.Attach(s)
	return &o, nil
}

// scanObject maps sql.ErrNoRows to ErrNotFound.
func (s *SQLiteStore) scanObject(row *sql.Row) (*Object, error) {
	o, err := s.scanObj(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan object: %w", err)
	}
	return o, nil
}

// scanObjects drains rows.
func (s *SQLiteStore) scanObjects(rows *sql.Rows) ([]*Object, error) {
	var objs []*Object
	for rows.Next() {
		o, err := s.scanObj(rows)
		if err != nil {
			return nil, fmt.Errorf("scan object: %w", err)
		}
		objs = append(objs, o)
	}
	return objs, rows.Err()
}

// encodeTags renders a tag list as the JSON array of arrays stored in the
// tags column.
func encodeTags(t Tags) (string, error) {
	b, err := json.Marshal(t.Strings())
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

// decodeTags parses the tags column. An empty column is an empty list.
func decodeTags(s string) (Tags, error) {
	if s == "" {
		return Tags{}, nil
	}
	var v [][]string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return TagsFrom(v), nil
}

// Tx runs fn in a transaction, committing when it returns nil and rolling
// back otherwise.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// genID returns a random 8-character object key.
func genID() (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(base32.StdEncoding.EncodeToString(b[:])), nil
}
