package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/handglow/internal/animation"
	"github.com/ayusman/handglow/internal/store"
)

// Settings is the part of the application the settings endpoint drives.
type Settings interface {
	Preferences() store.Preferences
	SetIntensity(v float64) float64
	SetAnimationsEnabled(enabled bool)
	SetThemeByName(name string) error
}

// SettingsHandler serves GET and PUT /api/settings.
type SettingsHandler struct {
	settings Settings
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(s Settings) *SettingsHandler {
	return &SettingsHandler{settings: s}
}

// updateSettingsRequest holds optional fields; absent fields are left
// unchanged.
type updateSettingsRequest struct {
	Theme             *string  `json:"theme"`
	Intensity         *float64 `json:"intensity"`
	AnimationsEnabled *bool    `json:"animations_enabled"`
}

type settingsResponse struct {
	store.Preferences
	Themes []string `json:"themes"`
}

func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, settingsResponse{
		Preferences: h.settings.Preferences(),
		Themes:      animation.ThemeNames(),
	})
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate everything before applying anything.
	if req.Intensity != nil && (*req.Intensity != *req.Intensity || *req.Intensity <= 0) {
		writeError(w, http.StatusBadRequest, "Intensity must be positive")
		return
	}
	if req.Theme != nil {
		if _, err := animation.ThemeByName(*req.Theme); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if req.Theme != nil {
		if err := h.settings.SetThemeByName(*req.Theme); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, animation.ErrUnknownTheme) || errors.Is(err, animation.ErrInvalidTheme) {
				status = http.StatusBadRequest
			}
			writeError(w, status, err.Error())
			return
		}
	}
	if req.Intensity != nil {
		h.settings.SetIntensity(*req.Intensity)
	}
	if req.AnimationsEnabled != nil {
		h.settings.SetAnimationsEnabled(*req.AnimationsEnabled)
	}

	h.get(w)
}
