package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/handglow/internal/animation"
	"github.com/ayusman/handglow/internal/store"
)

// fakeSettings is an in-memory Settings.
type fakeSettings struct {
	prefs store.Preferences
}

func (f *fakeSettings) Preferences() store.Preferences { return f.prefs }

func (f *fakeSettings) SetIntensity(v float64) float64 {
	f.prefs.Intensity = min(max(v, 0.1), 2)
	return f.prefs.Intensity
}

func (f *fakeSettings) SetAnimationsEnabled(enabled bool) { f.prefs.AnimationsEnabled = enabled }

func (f *fakeSettings) SetThemeByName(name string) error {
	if _, err := animation.ThemeByName(name); err != nil {
		return err
	}
	f.prefs.Theme = name
	return nil
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{prefs: store.Preferences{Theme: "classic", Intensity: 1, AnimationsEnabled: true}}
}

func TestSettingsHandler_Get(t *testing.T) {
	handler := NewSettingsHandler(newFakeSettings())

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var response settingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Theme != "classic" || response.Intensity != 1 || !response.AnimationsEnabled {
		t.Errorf("unexpected settings %+v", response.Preferences)
	}
	if len(response.Themes) != len(animation.ThemeNames()) {
		t.Errorf("themes = %v", response.Themes)
	}
}

func TestSettingsHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		want       store.Preferences
	}{
		{
			name:       "partial update",
			body:       `{"intensity": 1.5}`,
			wantStatus: http.StatusOK,
			want:       store.Preferences{Theme: "classic", Intensity: 1.5, AnimationsEnabled: true},
		},
		{
			name:       "all fields",
			body:       `{"theme": "neon", "intensity": 0.5, "animations_enabled": false}`,
			wantStatus: http.StatusOK,
			want:       store.Preferences{Theme: "neon", Intensity: 0.5, AnimationsEnabled: false},
		},
		{
			name:       "intensity is clamped",
			body:       `{"intensity": 9}`,
			wantStatus: http.StatusOK,
			want:       store.Preferences{Theme: "classic", Intensity: 2, AnimationsEnabled: true},
		},
		{
			name:       "unknown theme changes nothing",
			body:       `{"theme": "sepia", "intensity": 0.5}`,
			wantStatus: http.StatusBadRequest,
			want:       store.Preferences{Theme: "classic", Intensity: 1, AnimationsEnabled: true},
		},
		{
			name:       "non-positive intensity",
			body:       `{"intensity": 0}`,
			wantStatus: http.StatusBadRequest,
			want:       store.Preferences{Theme: "classic", Intensity: 1, AnimationsEnabled: true},
		},
		{
			name:       "invalid JSON",
			body:       `{"intensity":`,
			wantStatus: http.StatusBadRequest,
			want:       store.Preferences{Theme: "classic", Intensity: 1, AnimationsEnabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeSettings()
			handler := NewSettingsHandler(fake)

			req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if fake.prefs != tt.want {
				t.Errorf("settings = %+v, want %+v", fake.prefs, tt.want)
			}
			if rec.Code != http.StatusOK {
				var errResp errorResponse
				if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil || errResp.Error == "" {
					t.Errorf("expected a JSON error body, got %q", rec.Body.String())
				}
			}
		})
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	handler := NewSettingsHandler(newFakeSettings())
	for _, method := range []string{http.MethodPost, http.MethodDelete, http.MethodPatch} {
		req := httptest.NewRequest(method, "/api/settings", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
		}
	}
}
