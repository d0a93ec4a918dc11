// log_query.go reads entries back out of the audit log.

package log

import (
	"database/sql"
	"encoding/json"
	"errors"
)

// ErrNotOpen is returned by queries when no logger has been opened.
var ErrNotOpen = errors.New("audit log not open")

// Filter narrows a Recent query. Zero values match everything.
type Filter struct {
	Source  string // exact source, e.g. "publish:conflict"
	Path    string // exact input path
	Project bool   // restrict to the current project
	Limit   int    // max entries, newest first (0 = 50)
}

// Recent returns the newest log entries matching f.
func Recent(f Filter) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return nil, ErrNotOpen
	}
	return l.recent(f)
}

func (l *Logger) recent(f Filter) ([]Entry, error) {
	q := `SELECT start, end, source, author, action, path, revision,
		resolved_path, result_revision, success, error, detail
		FROM log WHERE 1=1`
	var args []any
	if f.Source != "" {
		q += ` AND source = ?`
		args = append(args, f.Source)
	}
	if f.Path != "" {
		q += ` AND path = ?`
		args = append(args, f.Path)
	}
	if f.Project {
		q += ` AND project = ?`
		args = append(args, l.project)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	q += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var author, path, resolved, errMsg, detail sql.NullString
		var rev, resultRev sql.NullInt64
		var success int
		if err := rows.Scan(&e.Start, &e.End, &e.Source, &author, &e.Action, &path, &rev,
			&resolved, &resultRev, &success, &errMsg, &detail); err != nil {
			return nil, err
		}
		e.Author = author.String
		e.Path = path.String
		e.Revision = int(rev.Int64)
		e.ResolvedPath = resolved.String
		e.ResultRevision = int(resultRev.Int64)
		e.Success = success == 1
		e.Error = errMsg.String
		if detail.Valid {
			if err := json.Unmarshal([]byte(detail.String), &e.Detail); err != nil {
				return nil, err
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
