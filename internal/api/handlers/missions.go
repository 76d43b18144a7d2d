package handlers

import (
	"net/http"
	"strings"

	"recon-planner-service/internal/api/dto"
	"recon-planner-service/internal/state"
)

// MissionHandler exposes mission lifecycle operations: list, create, switch,
// rename and delete.
type MissionHandler struct {
	Store *state.MissionStore
}

// ListOrCreate dispatches the /missions collection endpoint by method.
func (h *MissionHandler) ListOrCreate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *MissionHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	missions := h.Store.Missions()
	res := dto.ListMissionsResponse{
		Missions:  make([]dto.MissionResponse, 0, len(missions)),
		CurrentID: h.Store.CurrentMissionID(),
	}
	for _, m := range missions {
		res.Missions = append(res.Missions, dto.MissionResponse{
			ID:      m.ID,
			Name:    m.Name,
			Targets: m.Targets,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *MissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CreateMissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := h.Store.CreateMission(r.Context(), strings.TrimSpace(req.Name))
	writeJSON(w, r, http.StatusCreated, dto.CreateMissionResponse{ID: id})
}

func (h *MissionHandler) Switch(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SwitchMissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !h.Store.SwitchMission(r.Context(), req.ID) {
		writeError(w, r, http.StatusNotFound, "mission not found")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"current_id": req.ID})
}

func (h *MissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.DeleteMissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !h.Store.DeleteMission(r.Context(), req.ID) {
		writeError(w, r, http.StatusConflict, "cannot delete mission")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"current_id": h.Store.CurrentMissionID()})
}

func (h *MissionHandler) Rename(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RenameMissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}
	if !h.Store.RenameMission(r.Context(), req.ID, name) {
		writeError(w, r, http.StatusNotFound, "mission not found")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"id": req.ID, "name": name})
}
