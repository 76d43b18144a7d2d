package handlers

import (
	"net/http"

	"recon-planner-service/internal/api/dto"
	"recon-planner-service/internal/services"
	"recon-planner-service/internal/state"
)

// WeatherHandler reports the current simulated weather and threat level.
type WeatherHandler struct {
	Weather *services.WeatherSim
}

func (h *WeatherHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	res := dto.WeatherResponse{
		State:       string(h.Weather.Current()),
		ThreatLevel: h.Weather.ThreatLevel(),
	}
	writeJSON(w, r, http.StatusOK, res)
}

// LocaleHandler switches the display language for intel text.
type LocaleHandler struct {
	Store *state.MissionStore
}

func (h *LocaleHandler) Set(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.LocaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Locale != "en" && req.Locale != "sq" {
		writeError(w, r, http.StatusBadRequest, "locale must be en or sq")
		return
	}

	h.Store.SetLocale(req.Locale)
	writeJSON(w, r, http.StatusOK, map[string]string{"locale": req.Locale})
}
