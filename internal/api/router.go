package api

import (
	"net/http"

	"recon-planner-service/internal/api/handlers"
	"recon-planner-service/internal/domain"
	"recon-planner-service/internal/services"
	"recon-planner-service/internal/state"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(store *state.MissionStore, catalog domain.Catalog, weather *services.WeatherSim) http.Handler {
	mux := http.NewServeMux()

	broker := NewBroker()
	broker.Attach(store)

	placeHandler := &handlers.PlaceHandler{Catalog: catalog, Store: store}
	missionHandler := &handlers.MissionHandler{Store: store}
	itineraryHandler := &handlers.ItineraryHandler{
		Store:   store,
		Catalog: catalog,
		Weather: weather,
	}
	reviewHandler := &handlers.ReviewHandler{Store: store, Catalog: catalog}
	signalHandler := &handlers.SignalHandler{Store: store, Catalog: catalog}
	weatherHandler := &handlers.WeatherHandler{Weather: weather}
	localeHandler := &handlers.LocaleHandler{Store: store}
	dossierHandler := &handlers.DossierHandler{
		Store:   store,
		Catalog: catalog,
		Weather: weather,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/places", placeHandler.List)

	mux.HandleFunc("/missions", missionHandler.ListOrCreate)
	mux.HandleFunc("/missions/switch", missionHandler.Switch)
	mux.HandleFunc("/missions/delete", missionHandler.Delete)
	mux.HandleFunc("/missions/rename", missionHandler.Rename)

	mux.HandleFunc("/itinerary", itineraryHandler.Get)
	mux.HandleFunc("/itinerary/add", itineraryHandler.Add)
	mux.HandleFunc("/itinerary/remove", itineraryHandler.Remove)
	mux.HandleFunc("/itinerary/move", itineraryHandler.Move)
	mux.HandleFunc("/itinerary/replace", itineraryHandler.Replace)
	mux.HandleFunc("/itinerary/clear", itineraryHandler.Clear)
	mux.HandleFunc("/itinerary/optimize", itineraryHandler.Optimize)
	mux.HandleFunc("/itinerary/timeline", itineraryHandler.Timeline)
	mux.HandleFunc("/itinerary/risk", itineraryHandler.Risk)

	mux.HandleFunc("/reviews", reviewHandler.ListOrAdd)
	mux.HandleFunc("/signals", signalHandler.List)
	mux.HandleFunc("/signals/unlock", signalHandler.Unlock)
	mux.HandleFunc("/weather", weatherHandler.Get)
	mux.HandleFunc("/locale", localeHandler.Set)
	mux.HandleFunc("/dossier", dossierHandler.Render)
	mux.HandleFunc("/events", handleEvents(broker))

	return loggingMiddleware(mux)
}
