package handlers

import (
	"net/http"

	"recon-planner-service/internal/api/dto"
	"recon-planner-service/internal/domain"
	"recon-planner-service/internal/state"
)

// PlaceHandler exposes the read-only place catalog. Signal intel text is
// redacted unless the caller has unlocked the place's signal.
type PlaceHandler struct {
	Catalog domain.Catalog
	Store   *state.MissionStore
}

func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	locale := h.Store.Locale()

	res := dto.ListPlacesResponse{
		Places: make([]dto.PlaceResponse, 0, len(h.Catalog)),
	}
	for _, p := range h.Catalog {
		res.Places = append(res.Places, h.placeResponse(p, locale))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PlaceHandler) placeResponse(p domain.Place, locale string) dto.PlaceResponse {
	out := dto.PlaceResponse{
		Name:     p.Name,
		Lat:      p.Coordinates.Lat,
		Lng:      p.Coordinates.Lng,
		Category: p.Category,
	}
	if p.Crowd != nil {
		out.Crowd = &dto.CrowdProfileResponse{
			MaxDensity:   p.Crowd.MaxDensity,
			PeakHour:     p.Crowd.PeakHour,
			VisitMinutes: p.Crowd.VisitMinutes,
		}
	}
	if p.Signal != nil {
		sig := &dto.SignalProfileResponse{
			FrequencyMHz: p.Signal.FrequencyMHz,
			Mode:         p.Signal.Mode,
			Encryption:   p.Signal.Encryption,
		}
		if h.Store.IsUnlocked(p.Name) {
			intel := p.Signal.Intel[locale]
			if intel == "" {
				intel = p.Signal.Intel["en"]
			}
			sig.Intel = intel
		}
		out.Signal = sig
	}
	return out
}
