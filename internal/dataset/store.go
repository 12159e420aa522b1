package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/labeler"
	"github.com/Veraticus/museum-pulse/internal/model"
)

// Labeler turns raw reviews into labeled reviews.
type Labeler interface {
	Label(ctx context.Context, raws []model.RawReview) ([]model.LabeledReview, labeler.Stats, error)
}

// Store owns the current snapshot of a source file. Reloads are serialized;
// readers never block and always see a complete snapshot.
type Store struct {
	labeler Labeler
	current atomic.Pointer[Snapshot]
	path    string
	mu      sync.Mutex
}

// NewStore creates a store for the review file at path.
func NewStore(path string, l Labeler) *Store {
	return &Store{path: path, labeler: l}
}

// Path returns the source file path.
func (s *Store) Path() string {
	return s.path
}

// Current returns the latest snapshot, or nil before the first Load.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Load builds a snapshot from the source file unconditionally.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp, err := ComputeFingerprint(s.path)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, fp)
}

// Reload rebuilds the snapshot only if the source file changed since the
// last load. It reports whether a new snapshot was installed. On failure the
// previous snapshot stays in place.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp, err := ComputeFingerprint(s.path)
	if err != nil {
		return false, err
	}

	if cur := s.current.Load(); cur != nil && cur.Fingerprint.Equal(fp) {
		slog.Debug("Source unchanged, keeping snapshot", "snapshot", cur.ID)
		return false, nil
	}

	if _, err := s.build(ctx, fp); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) build(ctx context.Context, fp Fingerprint) (*Snapshot, error) {
	file, err := os.Open(s.path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer func() { _ = file.Close() }()

	raws, loadStats, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("%s: %w", s.path, common.ErrNoReviews)
	}

	labeled, labelStats, err := s.labeler.Label(ctx, raws)
	if err != nil {
		return nil, fmt.Errorf("failed to label %s: %w", s.path, err)
	}

	snap := NewSnapshot(labeled, fp, SnapshotStats{Load: loadStats, Label: labelStats})
	s.current.Store(snap)

	slog.Info("Installed snapshot",
		"snapshot", snap.ID,
		"path", s.path,
		"sha256", fp.Short(),
		"reviews", snap.Len(),
		"skipped_rows", loadStats.Skipped)

	return snap, nil
}
