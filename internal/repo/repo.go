// Package repo locates and creates .pubd directories.
//
// A .pubd directory holds one or more SQLite databases: pubd.db by default,
// pubd-<name>.db for named ones. Discovery walks up from the working
// directory the way git finds .git. Whether a database is committed is
// decided by .pubd/.gitignore.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/pubd/internal/store"
)

const (
	Dir    = ".pubd"
	DBFile = "pubd.db"
)

// ErrNotInitialised is returned when no .pubd directory or database is found.
var ErrNotInitialised = errors.New("pubd not initialised (run 'pubd init')")

// DBFileName maps a database name to its file: "" is pubd.db, "docs" is
// pubd-docs.db and a name ending in .db is used unchanged.
func DBFileName(name string) string {
	switch {
	case name == "":
		return DBFile
	case strings.HasSuffix(name, ".db"):
		return name
	}
	return "pubd-" + name + ".db"
}

// dbName is the inverse of DBFileName. ok is false for files that are not
// pubd databases.
func dbName(file string) (name string, ok bool) {
	if file == DBFile {
		return "", true
	}
	name, ok = strings.CutPrefix(file, "pubd-")
	if !ok || !strings.HasSuffix(name, ".db") {
		return "", false
	}
	return strings.TrimSuffix(name, ".db"), true
}

// Init creates dir/.pubd and an empty, migrated database in it. An existing
// database is replaced only with force. Settings are left to "pubd config";
// local only adds the database to .gitignore.
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	pubdDir := filepath.Join(dir, Dir)
	file := DBFileName(db)
	dbPath := filepath.Join(pubdDir, file)

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", file)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}
	if err := os.MkdirAll(pubdDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()
	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	gitignore := filepath.Join(pubdDir, ".gitignore")
	if _, err := os.Stat(gitignore); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(gitignore, []byte(defaultGitignore), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}
	if local {
		if err := IgnoreDB(db, pubdDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}
	return nil
}

// walkUp returns the first target, joined onto the working directory or one
// of its ancestors, that satisfies found.
func walkUp(target string, found func(os.FileInfo) bool) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		p := filepath.Join(dir, target)
		if info, err := os.Stat(p); err == nil && found(info) {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Discover returns the path of the named database in the nearest .pubd
// that contains it.
func Discover(db string) (string, error) {
	return walkUp(filepath.Join(Dir, DBFileName(db)), func(fi os.FileInfo) bool { return !fi.IsDir() })
}

// DiscoverDir returns the nearest .pubd directory.
func DiscoverDir() (string, error) {
	return walkUp(Dir, os.FileInfo.IsDir)
}

// DBInfo describes one database in a .pubd directory.
type DBInfo struct {
	Name  string `json:"name"` // "" for the default database
	File  string `json:"file"`
	Path  string `json:"path"`
	Local bool   `json:"local"` // gitignored
}

// ListDBs lists the databases in pubdDir, or the discovered .pubd when
// pubdDir is empty.
func ListDBs(pubdDir string) ([]DBInfo, error) {
	if pubdDir == "" {
		var err error
		if pubdDir, err = DiscoverDir(); err != nil {
			return nil, fmt.Errorf("discover .pubd directory: %w", err)
		}
	}
	entries, err := os.ReadDir(pubdDir)
	if err != nil {
		return nil, fmt.Errorf("read .pubd directory: %w", err)
	}
	g, err := loadGitignore(pubdDir)
	if err != nil {
		return nil, err
	}

	var dbs []DBInfo
	for _, e := range entries {
		name, ok := dbName(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  e.Name(),
			Path:  filepath.Join(pubdDir, e.Name()),
			Local: g.has(e.Name()),
		})
	}
	return dbs, nil
}
