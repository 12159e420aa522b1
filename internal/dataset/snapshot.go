package dataset

import (
	"slices"
	"time"

	"github.com/Veraticus/museum-pulse/internal/filter"
	"github.com/Veraticus/museum-pulse/internal/labeler"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/Veraticus/museum-pulse/internal/report"
	"github.com/google/uuid"
)

// SnapshotStats combines load and labeling statistics.
type SnapshotStats struct {
	Load  LoadStats     `json:"load" yaml:"load"`
	Label labeler.Stats `json:"label" yaml:"label"`
}

// Snapshot is an immutable labeled table built from one version of the
// source file.
type Snapshot struct {
	LoadedAt    time.Time     `json:"loaded_at" yaml:"loaded_at"`
	Fingerprint Fingerprint   `json:"fingerprint" yaml:"fingerprint"`
	ID          string        `json:"id" yaml:"id"`
	Stats       SnapshotStats `json:"stats" yaml:"stats"`
	reviews     []model.LabeledReview
}

// NewSnapshot wraps labeled reviews in a snapshot with a fresh ID. The slice
// is copied so later changes by the caller cannot leak in.
func NewSnapshot(reviews []model.LabeledReview, fp Fingerprint, stats SnapshotStats) *Snapshot {
	return &Snapshot{
		ID:          uuid.NewString(),
		Fingerprint: fp,
		LoadedAt:    time.Now(),
		Stats:       stats,
		reviews:     slices.Clone(reviews),
	}
}

// Len returns the number of reviews in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.reviews)
}

// Reviews returns a copy of every review in the snapshot.
func (s *Snapshot) Reviews() []model.LabeledReview {
	return slices.Clone(s.reviews)
}

// Filter returns the reviews matching spec.
func (s *Snapshot) Filter(spec filter.Spec) []model.LabeledReview {
	return filter.Apply(s.reviews, spec)
}

// Dashboard computes the requested dashboard pages for spec.
func (s *Snapshot) Dashboard(spec filter.Spec, opts report.Options) *report.Dashboard {
	return report.BuildView(s.reviews, spec, opts)
}

// Facets returns the selectable facet values of the snapshot.
func (s *Snapshot) Facets() filter.Facets {
	return filter.FacetsOf(s.reviews)
}
