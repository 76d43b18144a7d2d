package handlers

import (
	"net/http"

	"recon-planner-service/internal/api/dto"
	"recon-planner-service/internal/domain"
	"recon-planner-service/internal/state"
)

// SignalHandler exposes signal intercept progress: which transmissions have
// been decrypted and the clearance level that unlocks derive.
type SignalHandler struct {
	Store   *state.MissionStore
	Catalog domain.Catalog
}

func (h *SignalHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	res := dto.SignalsResponse{
		Unlocked:       h.Store.UnlockedSignals(),
		ClearanceLevel: h.Store.ClearanceLevel(),
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *SignalHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.UnlockSignalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	place := h.Catalog.Find(req.Place)
	if place == nil || place.Signal == nil {
		writeError(w, r, http.StatusNotFound, "no signal at that place")
		return
	}

	h.Store.UnlockSignal(r.Context(), req.Place)

	res := dto.SignalsResponse{
		Unlocked:       h.Store.UnlockedSignals(),
		ClearanceLevel: h.Store.ClearanceLevel(),
	}
	writeJSON(w, r, http.StatusOK, res)
}
