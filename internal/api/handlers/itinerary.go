package handlers

import (
	"net/http"
	"strconv"

	"recon-planner-service/internal/api/dto"
	"recon-planner-service/internal/domain"
	"recon-planner-service/internal/services"
	"recon-planner-service/internal/state"
)

// ItineraryHandler exposes waypoint operations on the active mission plus the
// derived route, timeline and risk views.
type ItineraryHandler struct {
	Store   *state.MissionStore
	Catalog domain.Catalog
	Weather *services.WeatherSim
}

func (h *ItineraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ItineraryResponse{Waypoints: h.Store.Itinerary()})
}

func (h *ItineraryHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.WaypointRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if h.Catalog.Find(req.Name) == nil {
		writeError(w, r, http.StatusNotFound, "unknown place")
		return
	}

	h.Store.AddWaypoint(r.Context(), req.Name)
	writeJSON(w, r, http.StatusOK, dto.ItineraryResponse{Waypoints: h.Store.Itinerary()})
}

func (h *ItineraryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.WaypointRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !h.Store.RemoveWaypoint(r.Context(), req.Name) {
		writeError(w, r, http.StatusNotFound, "waypoint not in itinerary")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ItineraryResponse{Waypoints: h.Store.Itinerary()})
}

func (h *ItineraryHandler) Move(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.MoveWaypointRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch req.Direction {
	case "up":
		h.Store.MoveWaypointUp(r.Context(), req.Name)
	case "down":
		h.Store.MoveWaypointDown(r.Context(), req.Name)
	default:
		writeError(w, r, http.StatusBadRequest, "direction must be up or down")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ItineraryResponse{Waypoints: h.Store.Itinerary()})
}

func (h *ItineraryHandler) Replace(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ReplaceItineraryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.Store.ReplaceItinerary(r.Context(), req.Waypoints)
	writeJSON(w, r, http.StatusOK, dto.ItineraryResponse{Waypoints: h.Store.Itinerary()})
}

func (h *ItineraryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	h.Store.ClearItinerary(r.Context())
	writeJSON(w, r, http.StatusOK, dto.ItineraryResponse{Waypoints: h.Store.Itinerary()})
}

// Optimize reorders the active itinerary by greedy nearest neighbor, keeping
// the first waypoint anchored, then persists the new order.
func (h *ItineraryHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	optimized := services.OptimizeRoute(h.Store.Itinerary(), h.Catalog)
	h.Store.ReplaceItinerary(r.Context(), optimized)

	res := dto.OptimizeResponse{
		Waypoints:           optimized,
		TotalDistanceMeters: services.TotalDistanceMeters(optimized, h.Catalog),
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Timeline expands the active itinerary into a schedule. The start clock is
// given as "HH:MM" via the start query parameter and defaults to 08:00.
func (h *ItineraryHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	startMinutes := 8 * 60
	if v := r.URL.Query().Get("start"); v != "" {
		parsed, err := services.ParseClock(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "start must be HH:MM")
			return
		}
		startMinutes = parsed
	}

	entries := services.BuildTimeline(h.Store.Itinerary(), startMinutes, services.DefaultSpeedKmh, h.Catalog)

	res := dto.TimelineResponse{Entries: make([]dto.TimelineEntryResponse, 0, len(entries))}
	for _, e := range entries {
		res.Entries = append(res.Entries, dto.TimelineEntryResponse{
			Kind:          e.Kind,
			Name:          e.Name,
			Arrive:        services.FormatMinutes(e.ArriveMinutes),
			Depart:        services.FormatMinutes(e.DepartMinutes),
			VisitMinutes:  e.VisitMinutes,
			TravelMinutes: e.TravelMinutes,
			CrowdRisk:     e.CrowdRisk,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Risk scores every waypoint of the active itinerary under current weather.
// The hour of day defaults to the arrival hour of a 08:00 departure, simplified
// here to a fixed query parameter.
func (h *ItineraryHandler) Risk(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	hour := 12
	if v := r.URL.Query().Get("hour"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 23 {
			writeError(w, r, http.StatusBadRequest, "hour must be 0..23")
			return
		}
		hour = parsed
	}

	weather := h.Weather.Current()
	res := dto.RiskReportResponse{
		Weather:     string(weather),
		ThreatLevel: h.Weather.ThreatLevel(),
	}
	for _, name := range h.Store.Itinerary() {
		score := services.SegmentRisk(weather, h.Catalog.Find(name), hour)
		res.Segments = append(res.Segments, dto.SegmentRiskResponse{
			Waypoint: name,
			Score:    score,
			Label:    services.RiskLabel(score),
			Color:    services.RiskColor(score),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
