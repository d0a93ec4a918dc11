// Package log is the audit trail: every CLI command, MCP tool call, HTTP
// request and publish conflict is recorded in ~/.pubd/log/pubd-log.db.
//
//	log.Event("publish:conflict", "publish").
//		Path(o.Path).
//		Detail("marker", found).
//		Write(err)
//
// Sources are "{extension}:{command}", "mcp:{tool}" or "http:{route}".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is one audited operation.
type Entry struct {
	Source   string // "object:cat", "mcp:pubd_read", "http:publish"
	Author   string
	Action   string // read, write, publish, unpublish, ...
	Path     string // path or key as requested
	Revision int

	ResolvedPath   string // canonical path when it differs from Path
	ResultRevision int    // revision written or read

	Start int64 // unix seconds at Event
	End   int64 // unix seconds at Write

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder accumulates an Entry. Start one with [Event] and finish it with
// [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts an entry for action performed by source.
func Event(source, action string) *Builder {
	return &Builder{entry: Entry{Source: source, Action: action, Start: time.Now().Unix()}}
}

// Author records who performed the operation. MCP tools use "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path records the requested path, key or prefix.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Revision records the revision that was asked for.
func (b *Builder) Revision(rev int) *Builder {
	b.entry.Revision = rev
	return b
}

// Resolved records the canonical path when it differs from the request.
func (b *Builder) Resolved(path string) *Builder {
	b.entry.ResolvedPath = path
	return b
}

// ResultRevision records the revision that was written or read.
func (b *Builder) ResultRevision(rev int) *Builder {
	b.entry.ResultRevision = rev
	return b
}

// Detail attaches an operation-specific value, such as the tag-value added
// or the marker found on a conflict.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = map[string]any{}
	}
	b.entry.Detail[key] = value
	return b
}

// Write stamps the end time and records the entry as failed when err is set.
func (b *Builder) Write(err error) {
	e := b.entry
	e.End = time.Now().Unix()
	e.Success = err == nil
	if err != nil {
		e.Error = err.Error()
	}
	Log(e)
}

// Open opens the audit database at its default location. Callers may treat
// a failure as a warning; logging is then a no-op.
func Open() error {
	return OpenAt(dbPathFunc())
}

// OpenAt initialises the global logger with a database at p. It is a no-op
// if a logger is already open.
func OpenAt(p string) error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if _, err := db.Exec(logSchema); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db, path: p}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .pubd directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = projectID(dir)
	}
}

// Log records e if a logger is open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
