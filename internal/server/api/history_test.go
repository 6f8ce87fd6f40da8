package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/handglow/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func seedEvents(t *testing.T, s *store.Store, base time.Time, labels ...string) {
	t.Helper()
	for i, label := range labels {
		e := &store.GestureEvent{
			TrackID:   "track",
			Label:     label,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.Events().Record(e); err != nil {
			t.Fatalf("failed to record event: %v", err)
		}
	}
}

func TestHistoryHandler_List(t *testing.T) {
	s := newTestStore(t)
	seedEvents(t, s, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), "fist", "peace", "one")
	handler := NewHistoryHandler(s)

	t.Run("newest first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		var response historyResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(response.Events) != 3 || response.Events[0].Label != "one" {
			t.Errorf("unexpected events %+v", response.Events)
		}
	})

	t.Run("limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history?limit=1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		var response historyResponse
		json.NewDecoder(rec.Body).Decode(&response)
		if len(response.Events) != 1 {
			t.Errorf("expected 1 event, got %d", len(response.Events))
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history?limit=abc", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestHistoryHandler_EmptyList(t *testing.T) {
	handler := NewHistoryHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if body := rec.Body.String(); body != "{\"events\":[]}\n" {
		t.Errorf("expected empty events array, got %q", body)
	}
}

func TestHistoryHandler_Stats(t *testing.T) {
	s := newTestStore(t)
	seedEvents(t, s, time.Now(), "fist", "fist", "thumbs_up")
	handler := NewHistoryHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/history/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var response statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Total != 3 || response.Counts["fist"] != 2 || response.Counts["thumbs_up"] != 1 {
		t.Errorf("unexpected stats %+v", response)
	}
}

func TestHistoryHandler_Prune(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	seedEvents(t, s, base, "fist", "peace", "one")
	handler := NewHistoryHandler(s)

	t.Run("requires before", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/history", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("removes older events", func(t *testing.T) {
		cutoff := base.Add(90 * time.Second).Format(time.RFC3339)
		req := httptest.NewRequest(http.MethodDelete, "/api/history?before="+cutoff, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		var response pruneResponse
		json.NewDecoder(rec.Body).Decode(&response)
		if response.Removed != 2 {
			t.Errorf("expected 2 removed, got %d", response.Removed)
		}
	})
}

func TestHistoryHandler_Routing(t *testing.T) {
	handler := NewHistoryHandler(newTestStore(t))

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodPost, "/api/history", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/api/history/stats", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/history/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s %s: expected status %d, got %d", tt.method, tt.path, tt.want, rec.Code)
		}
	}
}
