// Package document provides higher-level object operations backed by a
// Store implementation. It exposes a `Service` which wraps a `store.Store`
// and offers convenience methods for reading, writing, publishing and
// tagging objects.
package document

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/config"
	"github.com/jpl-au/pubd/internal/log"
	norm "github.com/jpl-au/pubd/internal/path"
	"github.com/jpl-au/pubd/internal/repo"
	"github.com/jpl-au/pubd/internal/service"
	"github.com/jpl-au/pubd/internal/store"
)

var _ service.Service = (*Service)(nil)

const DefaultAuthor = "unknown"

// Service provides higher-level object operations backed by a Store.
type Service struct {
	store      *store.SQLiteStore
	dbPath     string
	dir        string
	maxPath    int
	maxContent int64
	maxTags    int
	extCtx     extension.Context // for firing events to extensions
}

// New creates a new Service, discovering the DB by walking up the directory tree.
// The db parameter specifies which database to use (empty for default).
// Returns ErrNotInitialised if no matching database is found.
func New(db string) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenDir opens the database under dir/.pubd without walking up the tree.
// Returns repo.ErrNotInitialised if it does not exist.
func OpenDir(dir, db string) (*Service, error) {
	dbPath := filepath.Join(dir, repo.Dir, repo.DBFileName(db))
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("%s: %w", dbPath, repo.ErrNotInitialised)
	}
	return OpenPath(dbPath)
}

// OpenPath creates a Service on an explicit database file, skipping discovery.
func OpenPath(dbPath string) (*Service, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate %s: %w", dbPath, err)
	}

	cfg, err := config.Load()
	if err != nil {
		s.Close()
		return nil, err // config.Load provides detailed, actionable error messages
	}

	svc := &Service{
		store:  s,
		dbPath: dbPath,
		dir:    filepath.Dir(dbPath),
	}
	svc.applyConfig(cfg)
	return svc, nil
}

// Init initialises a new pubd store.
// If dir is empty, uses current directory; otherwise uses dir.
// The db parameter specifies which database to create (empty for default).
// If local is true, the database is added to .gitignore (not committed).
//
// Note: Init does not write config. Config is managed separately via "pubd config".
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// ReloadConfig reloads configuration from disk and updates cached values.
// Call this after modifying config to ensure the service uses new settings.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.applyConfig(cfg)
	return nil
}

func (s *Service) applyConfig(cfg *config.Config) {
	s.maxPath = cfg.MaxPath()
	s.maxContent = cfg.MaxContent()
	s.maxTags = cfg.MaxTags()
	s.store.SetLimits(store.Limits{
		MaxPath:    s.maxPath,
		MaxContent: s.maxContent,
		MaxTags:    s.maxTags,
	})
}

// SetExtensionContext sets the extension context for firing events.
// Called from cmd/init_extensions.go after creating the context.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// normalizePath normalises an object path for consistent storage and lookup.
// The store validates again on write.
func (s *Service) normalizePath(path string) (string, error) {
	return norm.Normalise(path)
}

// normalizePrefix normalises an optional prefix path. Empty prefixes are
// passed through unchanged to enable "list all" operations.
func (s *Service) normalizePrefix(prefix string) (string, error) {
	if prefix == "" {
		return "", nil
	}
	return norm.Normalise(prefix)
}

// fireEvent notifies all registered extension event handlers.
//
// Event handler errors are logged but not propagated. Extensions observe
// operations but cannot block them.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for _, ext := range extension.All() {
		if h, ok := ext.(extension.EventHandler); ok {
			if err := h.HandleEvent(s.extCtx, e); err != nil {
				log.Event("event:error", "error").
					Detail("ext", ext.Name()).
					Detail("event", string(e.EventType())).
					Write(err)
			}
		}
	}
}

// DB returns the underlying database connection for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Dir returns the directory holding the database file.
func (s *Service) Dir() string {
	return s.dir
}

// Tx runs a function within a database transaction.
//
// Rollback is always deferred and is a no-op after a successful Commit.
func (s *Service) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return fmt.Errorf("transaction rolled back: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
