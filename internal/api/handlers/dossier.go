package handlers

import (
	"errors"
	"log"
	"net/http"

	"recon-planner-service/internal/api/dto"
	"recon-planner-service/internal/domain"
	"recon-planner-service/internal/services"
	"recon-planner-service/internal/state"
)

// DossierHandler renders the printable mission briefing for the active
// mission. Rendering is refused when the itinerary is empty.
type DossierHandler struct {
	Store   *state.MissionStore
	Catalog domain.Catalog
	Weather *services.WeatherSim
}

func (h *DossierHandler) Render(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.DossierRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	format := req.Format
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "text" {
		writeError(w, r, http.StatusBadRequest, "format must be html or text")
		return
	}

	hour := req.Hour
	if hour < 0 || hour > 23 {
		writeError(w, r, http.StatusBadRequest, "hour must be 0..23")
		return
	}

	missionName := ""
	if m, ok := h.Store.Mission(h.Store.CurrentMissionID()); ok {
		missionName = m.Name
	}

	unlocked := make(map[string]bool)
	for _, name := range h.Store.UnlockedSignals() {
		unlocked[name] = true
	}

	svcReq := services.DossierRequest{
		MissionName: missionName,
		Itinerary:   h.Store.Itinerary(),
		Weather:     h.Weather.Current(),
		ThreatLevel: h.Weather.ThreatLevel(),
		HourOfDay:   hour,
		Unlocked:    unlocked,
		Locale:      h.Store.Locale(),
	}

	var content string
	var err error
	if format == "html" {
		content, err = services.RenderDossierHTML(svcReq, h.Catalog)
	} else {
		content, err = services.RenderDossierText(svcReq, h.Catalog)
	}
	if errors.Is(err, services.ErrEmptyItinerary) {
		writeError(w, r, http.StatusConflict, "itinerary is empty")
		return
	}
	if err != nil {
		log.Printf("render dossier failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DossierResponse{Format: format, Content: content})
}
