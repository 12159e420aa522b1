package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = common.RetryOptions{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     2 * time.Millisecond,
	Multiplier:   2,
}

func TestEmotionClient_Rank(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/detect", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req emotionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "what a lovely day", req.Text)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"emotions": []map[string]any{
				{"label": "Trust", "score": 0.2},
				{"label": "joy", "score": 0.7},
				{"label": "anticipation", "score": 0.2},
			},
			"dominant_emotion": "joy",
		})
	}))
	defer server.Close()

	client := NewEmotionClient(server.URL+"/", time.Second).WithRetryOptions(fastRetry)
	ranking, err := client.Rank(context.Background(), "what a lovely day")
	require.NoError(t, err)
	assert.Equal(t, []model.EmotionScore{
		{Label: "joy", Score: 0.7},
		{Label: "anticipation", Score: 0.2},
		{Label: "trust", Score: 0.2},
	}, ranking)
}

func TestEmotionClient_DominantOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"emotions": [], "dominant_emotion": "Fear"}`))
	}))
	defer server.Close()

	ranking, err := NewEmotionClient(server.URL, time.Second).Rank(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []model.EmotionScore{{Label: "fear", Score: 1}}, ranking)
}

func TestEmotionClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"emotions": [{"label": "joy", "score": 1}]}`))
	}))
	defer server.Close()

	client := NewEmotionClient(server.URL, time.Second).WithRetryOptions(fastRetry)
	ranking, err := client.Rank(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "joy", ranking[0].Label)
	assert.Equal(t, int32(3), calls.Load())
}

func TestEmotionClient_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad input", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewEmotionClient(server.URL, time.Second).WithRetryOptions(fastRetry)
	_, err := client.Rank(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrScorerUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestEmotionClient_Available(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "healthy", status: http.StatusOK, want: true},
		{name: "unhealthy", status: http.StatusInternalServerError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewEmotionClient(server.URL, time.Second)
			assert.Equal(t, tt.want, client.Available(context.Background()))
			assert.Equal(t, tt.want, client.Available(context.Background()))
			assert.Equal(t, int32(1), calls.Load(), "health is checked once")
		})
	}
}

func TestEmotionClient_UnreachableIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	assert.False(t, NewEmotionClient(url, 100*time.Millisecond).Available(context.Background()))
}
