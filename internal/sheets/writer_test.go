package sheets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/Veraticus/museum-pulse/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

type fakeAPI struct {
	tabs        map[string]map[string]int64
	updateErrs  []error
	created     []string
	updates     []string
	cleared     []string
	formatted   []int64
	nextSheetID int64
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{tabs: make(map[string]map[string]int64)}
}

func (f *fakeAPI) Tabs(_ context.Context, id string) (map[string]int64, error) {
	tabs, ok := f.tabs[id]
	if !ok {
		return nil, &common.RetryableError{Err: errors.New("not found"), Retryable: false}
	}
	out := make(map[string]int64, len(tabs))
	for k, v := range tabs {
		out[k] = v
	}
	return out, nil
}

func (f *fakeAPI) Create(ctx context.Context, title, _ string, tabs []string) (string, string, error) {
	id := "sheet-" + title
	f.created = append(f.created, id)
	f.tabs[id] = map[string]int64{}
	return id, "https://example.invalid/" + id, f.AddTabs(ctx, id, tabs)
}

func (f *fakeAPI) AddTabs(_ context.Context, id string, tabs []string) error {
	for _, tab := range tabs {
		f.nextSheetID++
		f.tabs[id][tab] = f.nextSheetID
	}
	return nil
}

func (f *fakeAPI) Clear(_ context.Context, _, rangeStr string) error {
	f.cleared = append(f.cleared, rangeStr)
	return nil
}

func (f *fakeAPI) Update(_ context.Context, _, rangeStr string, values [][]any) error {
	if len(f.updateErrs) > 0 {
		err := f.updateErrs[0]
		f.updateErrs = f.updateErrs[1:]
		if err != nil {
			return err
		}
	}
	f.updates = append(f.updates, rangeStr+":"+strings.Repeat("r", len(values)))
	return nil
}

func (f *fakeAPI) FormatHeader(_ context.Context, _ string, sheetID int64, _ int) error {
	f.formatted = append(f.formatted, sheetID)
	return nil
}

func testConfig() Config {
	c := DefaultConfig()
	c.ServiceAccountPath = "/unused.json"
	c.BatchSize = 2
	c.RetryDelay = time.Millisecond
	return c
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testReviews(n int) []model.LabeledReview {
	out := make([]model.LabeledReview, n)
	for i := range out {
		out[i] = model.LabeledReview{
			RawReview:   model.RawReview{ID: i, Rating: 5, Year: 2020, Month: 1, Day: 2},
			TouristType: model.TouristForeign,
			Sentiment:   model.SentimentPositive,
		}
	}
	return out
}

func TestExport_CreatesSpreadsheet(t *testing.T) {
	api := newFakeAPI()
	w := newWriter(api, testConfig(), testLogger())

	reviews := testReviews(3)
	overview := report.Build(reviews, report.Options{Page: report.PageOverview}).Overview
	id, err := w.Export(context.Background(), reviews, overview)
	require.NoError(t, err)

	assert.Equal(t, "sheet-"+DefaultSpreadsheetName, id)
	assert.Equal(t, []string{ReviewsTab, OverviewTab}, api.cleared)

	// 4 review rows (header + 3) in batches of 2.
	assert.Equal(t, "Reviews!A1:rr", api.updates[0])
	assert.Equal(t, "Reviews!A3:rr", api.updates[1])
	assert.True(t, strings.HasPrefix(api.updates[2], "Overview!A1:"))
	assert.Equal(t, []int64{api.tabs[id][ReviewsTab]}, api.formatted)
}

func TestExport_ExistingSpreadsheetGetsMissingTabs(t *testing.T) {
	api := newFakeAPI()
	api.tabs["existing"] = map[string]int64{ReviewsTab: 7}

	cfg := testConfig()
	cfg.SpreadsheetID = "existing"
	cfg.EnableFormatting = false
	w := newWriter(api, cfg, testLogger())

	id, err := w.Export(context.Background(), testReviews(1), nil)
	require.NoError(t, err)
	assert.Equal(t, "existing", id)
	assert.Empty(t, api.created)
	assert.Contains(t, api.tabs["existing"], OverviewTab)
	assert.Empty(t, api.formatted)
}

func TestExport_UnknownSpreadsheet(t *testing.T) {
	cfg := testConfig()
	cfg.SpreadsheetID = "missing"
	w := newWriter(newFakeAPI(), cfg, testLogger())

	_, err := w.Export(context.Background(), testReviews(1), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to access spreadsheet missing")
}

func TestExport_RetriesTransientFailures(t *testing.T) {
	api := newFakeAPI()
	api.updateErrs = []error{errors.New("connection reset")}
	w := newWriter(api, testConfig(), testLogger())

	_, err := w.Export(context.Background(), testReviews(1), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{ReviewsTab, ReviewsTab, OverviewTab}, api.cleared)
}

func TestExport_PermanentFailure(t *testing.T) {
	api := newFakeAPI()
	api.updateErrs = []error{classify(&googleapi.Error{Code: http.StatusForbidden})}
	w := newWriter(api, testConfig(), testLogger())

	_, err := w.Export(context.Background(), testReviews(1), nil)
	require.Error(t, err)
	assert.Len(t, api.cleared, 1, "a permission error is not retried")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantRateLimit bool
		wantPermanent bool
	}{
		{name: "rate limited", err: &googleapi.Error{Code: http.StatusTooManyRequests}, wantRateLimit: true},
		{name: "not found", err: &googleapi.Error{Code: http.StatusNotFound}, wantPermanent: true},
		{name: "server error", err: &googleapi.Error{Code: http.StatusBadGateway}},
		{name: "transport", err: errors.New("dial tcp: timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.Equal(t, tt.wantRateLimit, errors.Is(got, common.ErrRateLimit))

			var retryable *common.RetryableError
			permanent := errors.As(got, &retryable) && !retryable.Retryable
			assert.Equal(t, tt.wantPermanent, permanent)
		})
	}
	assert.NoError(t, classify(nil))
}

func TestReviewRows(t *testing.T) {
	r := testReviews(1)[0]
	r.Emotion = "joy"
	r.CompositeScore = 0.5

	rows := ReviewRows([]model.LabeledReview{r})
	require.Len(t, rows, 2)
	assert.Len(t, rows[1], len(reviewHeader))
	assert.Equal(t, "Foreign", rows[1][11])
	assert.Equal(t, "joy", rows[1][13])
	assert.Equal(t, 0.5, rows[1][16])
}

func TestOverviewRows(t *testing.T) {
	o := report.Build(testReviews(2), report.Options{Page: report.PageOverview}).Overview
	rows := OverviewRows(o)
	assert.Equal(t, []any{"Total Reviews", 2}, rows[2])
	assert.Equal(t, []any{"Month", "Reviews", "Average"}, rows[len(rows)-13])
	assert.Equal(t, []any{1, 2, 5.0}, rows[len(rows)-12])

	assert.Equal(t, []any{"Total Reviews", 0}, OverviewRows(nil)[1])
}
