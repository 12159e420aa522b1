package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/filter"
	"github.com/Veraticus/museum-pulse/internal/labeler"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/Veraticus/museum-pulse/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type copyLabeler struct {
	err   error
	calls int
	mu    sync.Mutex
}

func (c *copyLabeler) Label(_ context.Context, raws []model.RawReview) ([]model.LabeledReview, labeler.Stats, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return nil, labeler.Stats{}, c.err
	}
	out := make([]model.LabeledReview, len(raws))
	for i, r := range raws {
		out[i] = model.LabeledReview{RawReview: r, ReviewText: labeler.ReviewText(r.Title, r.Text)}
	}
	return out, labeler.Stats{Total: len(raws)}, nil
}

const header = "Title,Text,Rating,Year,Month,Day,Hometown\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestStore_LoadAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	writeFile(t, path, header+"a,Loved the garden,5,2019,1,1,\n")

	lab := &copyLabeler{}
	store := NewStore(path, lab)
	assert.Nil(t, store.Current())

	ctx := context.Background()
	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())
	assert.Same(t, snap, store.Current())
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, 1, snap.Stats.Label.Total)

	t.Run("unchanged file is a no-op", func(t *testing.T) {
		changed, err := store.Reload(ctx)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Same(t, snap, store.Current())
		assert.Equal(t, 1, lab.calls)
	})

	t.Run("changed file swaps snapshot", func(t *testing.T) {
		writeFile(t, path, header+"a,Loved the garden,5,2019,1,1,\nb,Too loud,2,2020,2,2,\n")
		future := time.Now().Add(time.Minute)
		require.NoError(t, os.Chtimes(path, future, future))

		changed, err := store.Reload(ctx)
		require.NoError(t, err)
		assert.True(t, changed)

		next := store.Current()
		assert.NotEqual(t, snap.ID, next.ID)
		assert.Equal(t, 2, next.Len())
		assert.Equal(t, 1, snap.Len(), "old snapshot is untouched")
	})

	t.Run("failed reload keeps previous snapshot", func(t *testing.T) {
		before := store.Current()
		writeFile(t, path, "Title,Text\nbroken,file\n")
		future := time.Now().Add(2 * time.Minute)
		require.NoError(t, os.Chtimes(path, future, future))

		changed, err := store.Reload(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrMissingColumn)
		assert.False(t, changed)
		assert.Same(t, before, store.Current())
	})
}

func TestStore_LabelFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	writeFile(t, path, header+"a,b,5,2019,1,1,\n")

	store := NewStore(path, &copyLabeler{err: common.ErrScorerFailed})
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, common.ErrScorerFailed)
	assert.Nil(t, store.Current())
}

func TestStore_NoReviews(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	writeFile(t, path, header)

	_, err := NewStore(path, &copyLabeler{}).Load(context.Background())
	assert.ErrorIs(t, err, common.ErrNoReviews)
}

func TestStore_MissingFile(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "nope.csv"), &copyLabeler{}).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStore_ConcurrentReaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	writeFile(t, path, header+"a,b,5,2019,1,1,\n")
	store := NewStore(path, &copyLabeler{})
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				snap := store.Current()
				assert.Len(t, snap.Filter(filter.Spec{}), snap.Len())
			}
		}()
	}
	for i := 0; i < 5; i++ {
		_, err := store.Load(context.Background())
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestSnapshot_Dashboard(t *testing.T) {
	snap := NewSnapshot([]model.LabeledReview{
		{ReviewText: "great", Sentiment: model.SentimentPositive},
		{ReviewText: "awful queue", Sentiment: model.SentimentNegative, Emotion: "anger"},
	}, Fingerprint{}, SnapshotStats{})

	d := snap.Dashboard(filter.Spec{Sentiments: []model.Sentiment{model.SentimentPositive}}, report.Options{})
	assert.Equal(t, 1, d.Total)
	require.NotNil(t, d.Negative)
	assert.Equal(t, 1, d.Negative.Total)
}

func TestSnapshot_ReviewsIsACopy(t *testing.T) {
	snap := NewSnapshot([]model.LabeledReview{{ReviewText: "original"}}, Fingerprint{}, SnapshotStats{})
	got := snap.Reviews()
	got[0].ReviewText = "changed"
	assert.Equal(t, "original", snap.Reviews()[0].ReviewText)
}

func TestFingerprint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	writeFile(t, path, "abc")

	a, err := ComputeFingerprint(path)
	require.NoError(t, err)
	b, err := ComputeFingerprint(path)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, int64(3), a.Size)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", a.SHA256)
	assert.Equal(t, "ba7816bf8f01", a.Short())

	writeFile(t, path, "abd")
	c, err := ComputeFingerprint(path)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}
