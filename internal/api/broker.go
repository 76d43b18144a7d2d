package api

import (
	"encoding/json"
	"sync"

	"recon-planner-service/internal/state"
)

// Broker fans mission store events out to SSE subscribers. Store events are
// synchronous; the broker decouples them from slow HTTP clients with buffered
// channels that drop when full.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan []byte]struct{})}
}

// Attach subscribes the broker to every event the store publishes.
func (b *Broker) Attach(store *state.MissionStore) {
	names := []state.EventName{
		state.EventItineraryChanged,
		state.EventMissionsUpdated,
		state.EventMissionSwitched,
		state.EventSignalUnlocked,
		state.EventClearanceLevelChanged,
		state.EventReviewAdded,
		state.EventLanguageChanged,
		state.EventError,
	}
	for _, name := range names {
		store.Subscribe(name, b.publish)
	}
}

func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

func (b *Broker) publish(e state.Event) {
	data, _ := json.Marshal(e)
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
