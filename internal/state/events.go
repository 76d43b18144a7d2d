package state

import (
	"sync"

	"recon-planner-service/internal/domain"
)

// Names of the events published by the mission store.
type EventName string

const (
	EventItineraryChanged      EventName = "itineraryChanged"
	EventMissionsUpdated       EventName = "missionsUpdated"
	EventMissionSwitched       EventName = "missionSwitched"
	EventSignalUnlocked        EventName = "signalUnlocked"
	EventClearanceLevelChanged EventName = "clearanceLevelChanged"
	EventReviewAdded           EventName = "reviewAdded"
	EventLanguageChanged       EventName = "languageChanged"
	EventError                 EventName = "error"
)

// Event is the tagged payload delivered to subscribers. Name selects which of
// the payload fields are meaningful:
//
//	itineraryChanged      Itinerary
//	missionsUpdated       Missions
//	missionSwitched       MissionID
//	signalUnlocked        PlaceName
//	clearanceLevelChanged Clearance
//	reviewAdded           PlaceName, Review
//	languageChanged       Locale
//	error                 Message
type Event struct {
	Name      EventName        `json:"name"`
	Itinerary []string         `json:"itinerary,omitempty"`
	Missions  []domain.Mission `json:"missions,omitempty"`
	MissionID string           `json:"missionId,omitempty"`
	PlaceName string           `json:"placeName,omitempty"`
	Review    *domain.Review   `json:"review,omitempty"`
	Clearance int              `json:"clearance,omitempty"`
	Locale    string           `json:"locale,omitempty"`
	Message   string           `json:"message,omitempty"`
}

// Handler receives a single event. Handlers run synchronously on the
// publishing goroutine, in subscription order.
type Handler func(Event)

// Bus is a minimal synchronous publish/subscribe dispatcher. There is no
// per-handler unsubscribe; Close drops every listener at teardown.
type Bus struct {
	mu       sync.Mutex
	handlers map[EventName][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[EventName][]Handler)}
}

// Subscribe registers a handler for one event name.
func (b *Bus) Subscribe(name EventName, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish invokes every handler registered for the event's name, in order.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	hs := make([]Handler, len(b.handlers[e.Name]))
	copy(hs, b.handlers[e.Name])
	b.mu.Unlock()

	for _, h := range hs {
		h(e)
	}
}

// Close removes all listeners.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[EventName][]Handler)
}
