package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/handglow/internal/store"
)

// HistoryHandler serves the gesture confirmation log:
//
//	GET    /api/history?limit=N      newest events first
//	GET    /api/history/stats        confirmations per label
//	DELETE /api/history?before=RFC3339
type HistoryHandler struct {
	store *store.Store
}

// NewHistoryHandler creates a HistoryHandler with the given store.
func NewHistoryHandler(s *store.Store) *HistoryHandler {
	return &HistoryHandler{store: s}
}

type historyResponse struct {
	Events []*store.GestureEvent `json:"events"`
}

type statsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type pruneResponse struct {
	Removed int64 `json:"removed"`
}

func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/history")
	path = strings.TrimPrefix(path, "/")

	switch {
	case path == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case path == "" && r.Method == http.MethodDelete:
		h.prune(w, r)
	case path == "stats" && r.Method == http.MethodGet:
		h.stats(w)
	case path == "" || path == "stats":
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.NotFound(w, r)
	}
}

func (h *HistoryHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	events, err := h.store.Events().Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}
	if events == nil {
		events = []*store.GestureEvent{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Events: events})
}

func (h *HistoryHandler) stats(w http.ResponseWriter) {
	counts, err := h.store.Events().Counts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count events")
		return
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	writeJSON(w, http.StatusOK, statsResponse{Counts: counts, Total: total})
}

func (h *HistoryHandler) prune(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query().Get("before")
	if v == "" {
		writeError(w, http.StatusBadRequest, "before is required")
		return
	}
	cutoff, err := time.Parse(time.RFC3339, v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "before must be an RFC 3339 timestamp")
		return
	}

	n, err := h.store.Events().Prune(cutoff)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to prune events")
		return
	}
	writeJSON(w, http.StatusOK, pruneResponse{Removed: n})
}
