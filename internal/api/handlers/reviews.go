package handlers

import (
	"net/http"
	"strings"

	"recon-planner-service/internal/api/dto"
	"recon-planner-service/internal/domain"
	"recon-planner-service/internal/state"
)

// ReviewHandler exposes per-place field reports.
type ReviewHandler struct {
	Store   *state.MissionStore
	Catalog domain.Catalog
}

// ListOrAdd dispatches the /reviews collection endpoint by method.
func (h *ReviewHandler) ListOrAdd(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Add(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	place := r.URL.Query().Get("place")
	if place == "" {
		writeError(w, r, http.StatusBadRequest, "place query parameter required")
		return
	}

	reviews := h.Store.Reviews(place)
	res := dto.ListReviewsResponse{
		Place:   place,
		Reviews: make([]dto.ReviewResponse, 0, len(reviews)),
	}
	for _, rv := range reviews {
		res.Reviews = append(res.Reviews, dto.ReviewResponse{
			User:   rv.User,
			Stars:  rv.Stars,
			Review: rv.Review,
			Date:   rv.Date,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AddReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if h.Catalog.Find(req.Place) == nil {
		writeError(w, r, http.StatusNotFound, "unknown place")
		return
	}
	if req.Stars < 1 || req.Stars > 5 {
		writeError(w, r, http.StatusBadRequest, "stars must be between 1 and 5")
		return
	}
	if strings.TrimSpace(req.Review) == "" {
		writeError(w, r, http.StatusBadRequest, "review text is required")
		return
	}

	user := strings.TrimSpace(req.User)
	if user == "" {
		user = "Anonymous"
	}

	ok := h.Store.AddReview(r.Context(), req.Place, domain.Review{
		User:   user,
		Stars:  req.Stars,
		Review: strings.TrimSpace(req.Review),
	})
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "could not save review")
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]string{"status": "saved"})
}
