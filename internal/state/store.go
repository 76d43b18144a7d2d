package state

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"recon-planner-service/internal/domain"
	"recon-planner-service/internal/ports"
)

const maxClearanceLevel = 5

// MissionStore is the aggregate root for all user-owned planning state: the
// mission collection, the active-mission pointer, decrypted signal progress,
// and place reviews. It is the single owner of the underlying storage keys;
// every read goes through accessors that return defensive copies, and every
// mutation persists and publishes a typed event.
//
// All operations are atomic from the caller's perspective: a mutex serializes
// access since HTTP handlers invoke the store concurrently. Storage failures
// never escape as errors — reads fall back to defaults, writes publish an
// error event and leave the in-memory mutation intact.
type MissionStore struct {
	mu  sync.Mutex
	kv  ports.KeyValueStore
	bus *Bus

	missions  map[string]*domain.Mission
	order     []string // stable mission iteration order
	currentID string

	unlocked  []string
	clearance int
	reviews   map[string][]domain.Review
	locale    string
}

// NewMissionStore loads persisted state (migrating legacy formats) and
// self-heals any inconsistencies before returning. The returned store always
// holds at least one mission and a resolvable active pointer.
func NewMissionStore(ctx context.Context, kv ports.KeyValueStore) *MissionStore {
	s := &MissionStore{
		kv:      kv,
		bus:     NewBus(),
		reviews: make(map[string][]domain.Review),
		locale:  "en",
	}

	missions, migrated := loadMissionState(ctx, kv)
	s.missions = missions
	s.rebuildOrder()

	if id := readRaw(ctx, kv, keyCurrentMission); id != "" {
		s.currentID = id
	}

	readJSON(ctx, kv, keySignals, &s.unlocked)
	readJSON(ctx, kv, keyReviews, &s.reviews)
	if s.reviews == nil {
		s.reviews = make(map[string][]domain.Review)
	}
	s.clearance = clearanceLevel(len(s.unlocked))

	// Self-heal: synthesize a default mission when none survived the load and
	// repoint a dangling active id. Corrections persist immediately so the
	// store never restarts into the same inconsistency.
	healed := s.ensureValidLocked()
	if migrated || healed {
		s.persistMissionsLocked(ctx)
		s.persistRaw(ctx, keySchemaVersion, schemaVersionCurrent)
	}

	return s
}

func newMissionID() string {
	return "mission_" + uuid.NewString()
}

func clearanceLevel(unlockedCount int) int {
	level := unlockedCount/2 + 1
	if level > maxClearanceLevel {
		return maxClearanceLevel
	}
	return level
}

// Subscribe registers a handler for one event name. Handlers run
// synchronously, in subscription order, on the mutating goroutine.
func (s *MissionStore) Subscribe(name EventName, h Handler) {
	s.bus.Subscribe(name, h)
}

// Close drops all event listeners.
func (s *MissionStore) Close() {
	s.bus.Close()
}

// --- mission collection ---

// Missions returns the mission collection in stable order, as copies.
func (s *MissionStore) Missions() []domain.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missionSnapshotLocked()
}

// CurrentMissionID returns the active mission id.
func (s *MissionStore) CurrentMissionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// Mission returns a copy of the mission with the given id.
func (s *MissionStore) Mission(id string) (domain.Mission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.missions[id]
	if !ok {
		return domain.Mission{}, false
	}
	return m.Clone(), true
}

// CreateMission inserts a new empty mission and returns its id. The active
// pointer does not move. An empty name gets a sequential "Operation N" label.
func (s *MissionStore) CreateMission(ctx context.Context, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = "Operation " + strconv.Itoa(len(s.missions)+1)
	}

	id := newMissionID()
	s.missions[id] = &domain.Mission{ID: id, Name: name, Targets: []string{}}
	s.order = append(s.order, id)

	s.persistMissionsLocked(ctx)
	s.bus.Publish(Event{Name: EventMissionsUpdated, Missions: s.missionSnapshotLocked()})
	return id
}

// SwitchMission makes the given mission active. Unknown ids are a no-op.
func (s *MissionStore) SwitchMission(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.missions[id]; !ok {
		return false
	}

	s.currentID = id
	s.persistMissionsLocked(ctx)
	s.bus.Publish(Event{Name: EventItineraryChanged, Itinerary: s.itineraryCopyLocked()})
	s.bus.Publish(Event{Name: EventMissionSwitched, MissionID: id})
	return true
}

// DeleteMission removes a mission. Deleting the last remaining mission is
// refused. When the active mission is deleted the pointer moves to the first
// remaining mission in stable order.
func (s *MissionStore) DeleteMission(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.missions) <= 1 {
		return false
	}
	if _, ok := s.missions[id]; !ok {
		return false
	}

	delete(s.missions, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if s.currentID == id {
		s.currentID = s.order[0]
		s.bus.Publish(Event{Name: EventMissionSwitched, MissionID: s.currentID})
		s.bus.Publish(Event{Name: EventItineraryChanged, Itinerary: s.itineraryCopyLocked()})
	}

	s.persistMissionsLocked(ctx)
	s.bus.Publish(Event{Name: EventMissionsUpdated, Missions: s.missionSnapshotLocked()})
	return true
}

// RenameMission changes a mission's display name in place.
func (s *MissionStore) RenameMission(ctx context.Context, id, newName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.missions[id]
	if !ok {
		return false
	}

	m.Name = newName
	s.persistMissionsLocked(ctx)
	s.bus.Publish(Event{Name: EventMissionsUpdated, Missions: s.missionSnapshotLocked()})
	return true
}

// --- active itinerary ---

// Itinerary returns a copy of the active mission's waypoint list.
func (s *MissionStore) Itinerary() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itineraryCopyLocked()
}

// IsInItinerary reports whether the active mission includes the place.
func (s *MissionStore) IsInItinerary(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missions[s.currentID].HasTarget(name)
}

// AddWaypoint appends a place to the active itinerary. Set semantics on
// insert: adding a name already present is a no-op.
func (s *MissionStore) AddWaypoint(ctx context.Context, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.missions[s.currentID]
	if m.HasTarget(name) {
		return false
	}

	m.Targets = append(m.Targets, name)
	s.persistMissionsLocked(ctx)
	s.bus.Publish(Event{Name: EventItineraryChanged, Itinerary: s.itineraryCopyLocked()})
	return true
}

// RemoveWaypoint drops a place from the active itinerary.
func (s *MissionStore) RemoveWaypoint(ctx context.Context, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.missions[s.currentID]
	idx := indexOf(m.Targets, name)
	if idx < 0 {
		return false
	}

	m.Targets = append(m.Targets[:idx], m.Targets[idx+1:]...)
	s.persistMissionsLocked(ctx)
	s.bus.Publish(Event{Name: EventItineraryChanged, Itinerary: s.itineraryCopyLocked()})
	return true
}

// MoveWaypointUp swaps a waypoint toward index 0. No-op at the boundary.
func (s *MissionStore) MoveWaypointUp(ctx context.Context, name string) bool {
	return s.moveWaypoint(ctx, name, -1)
}

// MoveWaypointDown swaps a waypoint toward the end. No-op at the boundary.
func (s *MissionStore) MoveWaypointDown(ctx context.Context, name string) bool {
	return s.moveWaypoint(ctx, name, +1)
}

func (s *MissionStore) moveWaypoint(ctx context.Context, name string, dir int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.missions[s.currentID]
	idx := indexOf(m.Targets, name)
	if idx < 0 {
		return false
	}

	swap := idx + dir
	if swap < 0 || swap >= len(m.Targets) {
		return false
	}

	m.Targets[idx], m.Targets[swap] = m.Targets[swap], m.Targets[idx]
	s.persistMissionsLocked(ctx)
	s.bus.Publish(Event{Name: EventItineraryChanged, Itinerary: s.itineraryCopyLocked()})
	return true
}

// ReplaceItinerary swaps the active mission's waypoint list wholesale, used
// after route optimization. Duplicates are dropped keeping first occurrence.
func (s *MissionStore) ReplaceItinerary(ctx context.Context, waypoints []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(waypoints))
	targets := make([]string, 0, len(waypoints))
	for _, name := range waypoints {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		targets = append(targets, name)
	}

	s.missions[s.currentID].Targets = targets
	s.persistMissionsLocked(ctx)
	s.bus.Publish(Event{Name: EventItineraryChanged, Itinerary: s.itineraryCopyLocked()})
}

// ClearItinerary empties the active mission's waypoint list.
func (s *MissionStore) ClearItinerary(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.missions[s.currentID].Targets = []string{}
	s.persistMissionsLocked(ctx)
	s.bus.Publish(Event{Name: EventItineraryChanged, Itinerary: s.itineraryCopyLocked()})
}

// --- signals / clearance ---

// UnlockSignal records a decrypted signal. Idempotent: the unlocked set only
// grows. Derived clearance level is min(5, unlocked/2 + 1).
func (s *MissionStore) UnlockSignal(ctx context.Context, placeName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.unlocked, placeName) >= 0 {
		return
	}

	s.unlocked = append(s.unlocked, placeName)
	s.clearance = clearanceLevel(len(s.unlocked))

	s.persistJSONLocked(ctx, keySignals, s.unlocked, "Storage Error: Unable to save SIGINT progress.")
	s.bus.Publish(Event{Name: EventSignalUnlocked, PlaceName: placeName})
	s.bus.Publish(Event{Name: EventClearanceLevelChanged, Clearance: s.clearance})
}

// UnlockedSignals returns a copy of the unlocked place names.
func (s *MissionStore) UnlockedSignals() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.unlocked))
	copy(out, s.unlocked)
	return out
}

// IsUnlocked reports whether the place's signal has been decrypted.
func (s *MissionStore) IsUnlocked(placeName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.unlocked, placeName) >= 0
}

// ClearanceLevel returns the derived operator clearance, 1..5.
func (s *MissionStore) ClearanceLevel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearance
}

// --- reviews ---

// Reviews returns a copy of the reviews recorded for a place.
func (s *MissionStore) Reviews(placeName string) []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Review, len(s.reviews[placeName]))
	copy(out, s.reviews[placeName])
	return out
}

// AddReview appends a review. Validation (non-empty text, stars 1..5) is the
// caller's responsibility before invocation. Returns false when the review
// could not be persisted; the in-memory copy is retained either way so the
// caller can surface a recoverable warning.
func (s *MissionStore) AddReview(ctx context.Context, placeName string, review domain.Review) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if review.Date.IsZero() {
		review.Date = time.Now()
	}
	s.reviews[placeName] = append(s.reviews[placeName], review)

	raw, err := json.Marshal(s.reviews)
	if err == nil {
		err = s.kv.Set(ctx, keyReviews, string(raw))
	}
	if err != nil {
		log.Printf("persist reviews failed: %v", err)
		s.bus.Publish(Event{Name: EventError, Message: "Storage Error: Unable to save review."})
		return false
	}

	s.bus.Publish(Event{Name: EventReviewAdded, PlaceName: placeName, Review: &review})
	return true
}

// --- locale ---

// SetLocale selects the intel locale. Not persisted: resets on restart.
func (s *MissionStore) SetLocale(locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locale = locale
	s.bus.Publish(Event{Name: EventLanguageChanged, Locale: locale})
}

// Locale returns the current intel locale.
func (s *MissionStore) Locale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// --- internals (callers hold s.mu) ---

func (s *MissionStore) itineraryCopyLocked() []string {
	m := s.missions[s.currentID]
	out := make([]string, len(m.Targets))
	copy(out, m.Targets)
	return out
}

func (s *MissionStore) missionSnapshotLocked() []domain.Mission {
	out := make([]domain.Mission, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.missions[id].Clone())
	}
	return out
}

func (s *MissionStore) rebuildOrder() {
	s.order = s.order[:0]
	for id := range s.missions {
		s.order = append(s.order, id)
	}
	sort.Strings(s.order)
}

// ensureValidLocked restores the "at least one mission, resolvable active
// pointer" invariants. Reports whether anything had to be repaired.
func (s *MissionStore) ensureValidLocked() bool {
	if len(s.missions) == 0 {
		id := newMissionID()
		s.missions = map[string]*domain.Mission{
			id: {ID: id, Name: defaultMissionName, Targets: []string{}},
		}
		s.order = []string{id}
		s.currentID = id
		return true
	}

	if _, ok := s.missions[s.currentID]; !ok {
		s.currentID = s.order[0]
		return true
	}
	return false
}

// persistMissionsLocked writes the mission map, the active pointer, and the
// legacy flat-itinerary mirror. A storage failure is reported as a non-fatal
// error event; the in-memory state stays authoritative.
func (s *MissionStore) persistMissionsLocked(ctx context.Context) {
	persisted := make(map[string]domain.Mission, len(s.missions))
	for id, m := range s.missions {
		persisted[id] = m.Clone()
	}

	raw, err := json.Marshal(persisted)
	if err == nil {
		err = s.kv.Set(ctx, keyMissions, string(raw))
	}
	if err == nil {
		err = s.kv.Set(ctx, keyCurrentMission, s.currentID)
	}
	if err == nil {
		var mirror []byte
		mirror, err = json.Marshal(s.missions[s.currentID].Targets)
		if err == nil {
			err = s.kv.Set(ctx, keyLegacyItinerary, string(mirror))
		}
	}

	if err != nil {
		log.Printf("persist missions failed: %v", err)
		s.bus.Publish(Event{Name: EventError, Message: "Storage Error: Unable to save mission data. Storage might be full."})
	}
}

func (s *MissionStore) persistJSONLocked(ctx context.Context, key string, value any, failureMsg string) {
	raw, err := json.Marshal(value)
	if err == nil {
		err = s.kv.Set(ctx, key, string(raw))
	}
	if err != nil {
		log.Printf("persist failed: key=%s err=%v", key, err)
		s.bus.Publish(Event{Name: EventError, Message: failureMsg})
	}
}

func (s *MissionStore) persistRaw(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		log.Printf("persist failed: key=%s err=%v", key, err)
	}
}

func indexOf(list []string, name string) int {
	for i, v := range list {
		if v == name {
			return i
		}
	}
	return -1
}
