package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Veraticus/museum-pulse/internal/dataset"
	"github.com/Veraticus/museum-pulse/internal/filter"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/Veraticus/museum-pulse/internal/report"
)

// Pagination bounds for /api/reviews.
const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// ReviewsResponse is one page of filtered reviews.
type ReviewsResponse struct {
	Reviews []model.LabeledReview `json:"reviews"`
	Total   int                   `json:"total"`
	Offset  int                   `json:"offset"`
	Limit   int                   `json:"limit"`
}

// ReloadResponse reports the outcome of a reload.
type ReloadResponse struct {
	Snapshot string `json:"snapshot"`
	Changed  bool   `json:"changed"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Snapshot string `json:"snapshot,omitempty"`
	Reviews  int    `json:"reviews"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) snapshot(w http.ResponseWriter) (*dataset.Snapshot, bool) {
	snap := s.source.Current()
	if snap == nil {
		respondWithError(w, http.StatusServiceUnavailable, "no snapshot loaded")
		return nil, false
	}
	return snap, true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.source.Current()
	if snap == nil {
		respondWithJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "loading"})
		return
	}
	respondWithJSON(w, http.StatusOK, healthResponse{Status: "ok", Snapshot: snap.ID, Reviews: snap.Len()})
}

func (s *Server) handleFacets(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, snap.Facets())
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	query := r.URL.Query()
	limit, err := intParam(query.Get("limit"), DefaultLimit)
	if err != nil || limit <= 0 {
		respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	limit = min(limit, MaxLimit)
	offset, err := intParam(query.Get("offset"), 0)
	if err != nil || offset < 0 {
		respondWithError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	view := snap.Filter(filter.Parse(query))
	start := min(offset, len(view))
	end := min(start+limit, len(view))

	respondWithJSON(w, http.StatusOK, ReviewsResponse{
		Reviews: view[start:end],
		Total:   len(view),
		Offset:  offset,
		Limit:   limit,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := report.ParsePage(r.PathValue("page"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	spec := filter.Parse(r.URL.Query())
	key := CacheKey(snap.ID, page, spec)
	if body, hit := s.cache.Get(key); hit {
		slog.Debug("Cache hit", "key", key)
		w.Header().Set("X-Cache", "HIT")
		writeBody(w, http.StatusOK, body)
		return
	}

	d := snap.Dashboard(spec, report.Options{Page: page, TopN: s.topN})
	body, err := json.Marshal(d)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to encode dashboard")
		return
	}
	s.cache.Add(key, body)

	w.Header().Set("X-Cache", "MISS")
	writeBody(w, http.StatusOK, body)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	changed, err := s.source.Reload(r.Context())
	if err != nil {
		slog.Error("Reload failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := ReloadResponse{Changed: changed}
	if snap := s.source.Current(); snap != nil {
		resp.Snapshot = snap.ID
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeBody(w, statusCode, body)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, errorResponse{Error: message})
}

func writeBody(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}
