// repo_gitignore.go edits .pubd/.gitignore to switch a database between
// local (ignored) and shared (committed). Lines other than database entries
// are kept as written.

package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local databases (not committed)"

// defaultGitignore is written by Init on first use of a .pubd directory.
const defaultGitignore = `# pubd - ignore local config and SQLite side files
# Database files (*.db) are the source of truth and should be committed
*.db-wal
*.db-shm
config.yaml
`

// gitignore is the line-by-line content of a .pubd/.gitignore file.
type gitignore struct {
	path  string
	lines []string
}

func loadGitignore(pubdDir string) (*gitignore, error) {
	if pubdDir == "" {
		var err error
		if pubdDir, err = DiscoverDir(); err != nil {
			return nil, err
		}
	}
	g := &gitignore{path: filepath.Join(pubdDir, ".gitignore")}

	data, err := os.ReadFile(g.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return g, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", g.path, err)
	}
	g.lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	return g, nil
}

func (g *gitignore) has(entry string) bool {
	return slices.ContainsFunc(g.lines, func(l string) bool {
		return strings.TrimSpace(l) == entry
	})
}

// add appends entry under the local databases header.
func (g *gitignore) add(entry string) {
	if g.has(entry) {
		return
	}
	if !g.has(localDBHeader) {
		g.lines = append(g.lines, "", localDBHeader)
	}
	g.lines = append(g.lines, entry)
}

// remove drops entry, and the header once no database entries follow it.
func (g *gitignore) remove(entry string) {
	g.lines = slices.DeleteFunc(g.lines, func(l string) bool {
		return strings.TrimSpace(l) == entry
	})

	i := slices.Index(g.lines, localDBHeader)
	if i < 0 {
		return
	}
	if slices.ContainsFunc(g.lines[i+1:], func(l string) bool {
		return strings.HasSuffix(strings.TrimSpace(l), ".db")
	}) {
		return
	}
	g.lines = g.lines[:i]
	for len(g.lines) > 0 && strings.TrimSpace(g.lines[len(g.lines)-1]) == "" {
		g.lines = g.lines[:len(g.lines)-1]
	}
}

func (g *gitignore) save() error {
	return os.WriteFile(g.path, []byte(strings.Join(g.lines, "\n")+"\n"), 0644)
}

// IgnoreDB marks a database local by listing it in .gitignore.
// An empty pubdDir means the discovered .pubd directory.
func IgnoreDB(name, pubdDir string) error {
	g, err := loadGitignore(pubdDir)
	if err != nil {
		return err
	}
	g.add(DBFileName(name))
	return g.save()
}

// UnignoreDB marks a database shared by removing it from .gitignore.
func UnignoreDB(name, pubdDir string) error {
	g, err := loadGitignore(pubdDir)
	if err != nil {
		return err
	}
	g.remove(DBFileName(name))
	return g.save()
}

// IsIgnored reports whether a database is listed in .gitignore.
func IsIgnored(name, pubdDir string) (bool, error) {
	g, err := loadGitignore(pubdDir)
	if err != nil {
		return false, err
	}
	return g.has(DBFileName(name)), nil
}
