package handlers

import (
	"encoding/json"
	"net/http"

	"dashpad/models"
	"dashpad/services"
)

type SettingsHandlers struct {
	settings *services.SettingsService
}

func NewSettingsHandlers(settings *services.SettingsService) *SettingsHandlers {
	return &SettingsHandlers{settings: settings}
}

func (sh *SettingsHandlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondData(w, sh.settings.Settings())
}

func (sh *SettingsHandlers) ReplaceSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid settings payload")
		return
	}

	sh.settings.Replace(settings)
	respondData(w, sh.settings.Settings())
}

func (sh *SettingsHandlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	sh.settings.ToggleTheme()
	respondData(w, sh.settings.Settings())
}

func (sh *SettingsHandlers) ToggleSection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Section string `json:"section"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Section == "" {
		respondError(w, http.StatusBadRequest, "Section is required")
		return
	}

	sh.settings.ToggleSection(body.Section)
	respondData(w, sh.settings.Settings())
}

func (sh *SettingsHandlers) ResetSettings(w http.ResponseWriter, r *http.Request) {
	sh.settings.ResetSettings()
	respondData(w, sh.settings.Settings())
}
