// log_storage.go persists entries to the audit database.
//
// Writes are best-effort: a failed insert is reported on stderr and the
// calling operation carries on.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

const logSchema = `
CREATE TABLE IF NOT EXISTS log (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	start           INTEGER NOT NULL,
	end             INTEGER NOT NULL,
	project         TEXT NOT NULL,
	source          TEXT NOT NULL,
	author          TEXT,
	action          TEXT NOT NULL,
	path            TEXT,
	revision        INTEGER,
	resolved_path   TEXT,
	result_revision INTEGER,
	success         INTEGER NOT NULL,
	error           TEXT,
	detail          TEXT
);
CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
CREATE INDEX IF NOT EXISTS idx_log_project ON log(project);
CREATE INDEX IF NOT EXISTS idx_log_source ON log(source);
`

const insertEntry = `INSERT INTO log (start, end, project, source, author, action,
	path, revision, resolved_path, result_revision, success, error, detail)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Logger writes audit entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	path    string
	project string
}

// row maps an Entry onto nullable columns.
func (l *Logger) row(e Entry) []any {
	var detail sql.NullString
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			detail = sql.NullString{String: string(b), Valid: true}
		}
	}
	return []any{
		e.Start, e.End, l.project, e.Source,
		text(e.Author), e.Action, text(e.Path), num(e.Revision),
		text(e.ResolvedPath), num(e.ResultRevision),
		e.Success, text(e.Error), detail,
	}
}

func (l *Logger) log(e Entry) {
	if _, err := l.db.Exec(insertEntry, l.row(e)...); err != nil {
		fmt.Fprintf(os.Stderr, "pubd: audit log write failed: %v\n", err)
	}
}

func text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func num(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

// dbPathFunc locates the audit database. Tests swap it for a temp path.
var dbPathFunc = func() string {
	base := "."
	if home, err := os.UserHomeDir(); err == nil {
		base = home
	}
	return filepath.Join(base, ".pubd", "log", "pubd-log.db")
}

// DBPath returns the path of the open audit database, or where it would be
// opened by default.
func DBPath() string {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		return global.path
	}
	return dbPathFunc()
}

// projectID is a 64-bit blake2b digest of the .pubd directory.
func projectID(dir string) string {
	sum, _ := blake2b.New(8, nil)
	sum.Write([]byte(dir))
	return hex.EncodeToString(sum.Sum(nil))
}
