package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hupe1980/vecdb"
	"github.com/hupe1980/vecdb/resource"
)

type insertRequest struct {
	ID        string            `json:"id"`
	Embedding []float32         `json:"embedding"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type searchRequest struct {
	Vector []float32         `json:"vector"`
	K      int               `json:"k"`
	Filter map[string]string `json:"filter,omitempty"`
}

type searchResult struct {
	ID    string `json:"id"`
	Score score  `json:"score"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type recordResponse struct {
	ID        string            `json:"id"`
	Embedding vector            `json:"embedding"`
	Metadata  map[string]string `json:"metadata"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Dimension int    `json:"dimension"`
	Count     int    `json:"count"`
}

type statsResponse struct {
	Dimension  int                      `json:"dimension"`
	Count      int                      `json:"count"`
	Operations *vecdb.BasicMetricsStats `json:"operations,omitempty"`
	Admission  resource.Stats           `json:"admission"`
}

// handleInsert handles POST /vector
// Request: {"id": "doc-1", "embedding": [...], "metadata": {"k": "v"}}
// Response: {"status": "inserted"}
func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeJSONError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.Insert(r.Context(), req.ID, req.Embedding, req.Metadata); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "inserted"})
}

// handleSearch handles POST /search
// Request: {"vector": [...], "k": 5, "filter": {"k": "v"}}
// Response: {"results": [{"id": "doc-1", "score": 0.98}]}
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.controller.AcquireSearch(r.Context()); err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, "search capacity exhausted")
		return
	}
	defer s.controller.ReleaseSearch()

	var opts []vecdb.SearchOption
	if len(req.Filter) > 0 {
		opts = append(opts, vecdb.WithFilter(req.Filter))
	}

	results, err := s.store.SearchNearest(r.Context(), req.Vector, req.K, opts...)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := searchResponse{Results: make([]searchResult, len(results))}
	for i, res := range results {
		resp.Results[i] = searchResult{ID: res.ID, Score: score(res.Score)}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleGet handles GET /vector/{id}
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recordResponse{
		ID:        rec.ID,
		Embedding: vector(rec.Embedding),
		Metadata:  rec.Metadata,
	})
}

// handleDelete handles DELETE /vector/{id}
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Dimension: s.store.Dimension(),
		Count:     s.store.Len(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	resp := statsResponse{
		Dimension: s.store.Dimension(),
		Count:     s.store.Len(),
		Admission: s.controller.Stats(),
	}
	if s.metrics != nil {
		stats := s.metrics.GetStats()
		resp.Operations = &stats
	}

	writeJSON(w, http.StatusOK, resp)
}

// decode reads a size-limited JSON body into dst and writes the error
// response itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// statusFor maps store errors to HTTP status codes.
func statusFor(err error) int {
	var mismatch *vecdb.ErrDimensionMismatch
	switch {
	case errors.As(err, &mismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, vecdb.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, vecdb.ErrInvalidK):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	writeJSONError(w, statusFor(err), err.Error())
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
