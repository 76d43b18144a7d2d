package domain

import "time"

// Represents a named itinerary: an ordered sequence of catalog place names.
// The target order is semantically meaningful (it defines the travel sequence)
// and a mission never contains the same target twice.
type Mission struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Targets []string `json:"targets"`
}

// Clone returns a deep copy so callers can never alias internal storage.
func (m Mission) Clone() Mission {
	targets := make([]string, len(m.Targets))
	copy(targets, m.Targets)
	return Mission{ID: m.ID, Name: m.Name, Targets: targets}
}

// HasTarget reports whether the mission already includes the named place.
func (m Mission) HasTarget(name string) bool {
	for _, t := range m.Targets {
		if t == name {
			return true
		}
	}
	return false
}

// A single visitor review of a place. Star ratings are 1..5; zero is the
// unsubmitted sentinel and is rejected before a review reaches the store.
type Review struct {
	User   string    `json:"user"`
	Stars  int       `json:"stars"`
	Review string    `json:"review"`
	Date   time.Time `json:"date"`
}
