// maint.go holds the maintenance operations: vacuum, stats and checkpoint.

package document

import (
	"context"
	"time"

	"github.com/jpl-au/pubd/internal/path"
	"github.com/jpl-au/pubd/internal/store"
)

// Vacuum purges soft-deleted objects under prefix, optionally only those
// deleted more than olderThan ago.
func (s *Service) Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error) {
	if prefix == "" {
		return s.store.Vacuum(ctx, olderThan, "")
	}
	norm, err := path.Normalise(prefix)
	if err != nil {
		return 0, err
	}
	return s.store.Vacuum(ctx, olderThan, norm)
}

func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

// Checkpoint folds the WAL back into the database file, leaving it safe to
// copy.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}
