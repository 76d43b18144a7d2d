package state

import (
	"context"
	"testing"
	"time"

	"recon-planner-service/internal/adapters/storage"
	"recon-planner-service/internal/domain"
)

func newTestStore(t *testing.T) (*MissionStore, *storage.MemoryKVStore) {
	t.Helper()
	kv := storage.NewMemoryKVStore()
	s := NewMissionStore(context.Background(), kv)
	t.Cleanup(s.Close)
	return s, kv
}

func TestNewStoreSynthesizesDefaultMission(t *testing.T) {
	s, _ := newTestStore(t)

	missions := s.Missions()
	if len(missions) != 1 {
		t.Fatalf("got %d missions, want 1", len(missions))
	}
	if missions[0].Name != "Operation Alpha" {
		t.Fatalf("default mission name = %q", missions[0].Name)
	}
	if s.CurrentMissionID() != missions[0].ID {
		t.Fatalf("active pointer %q does not match sole mission %q", s.CurrentMissionID(), missions[0].ID)
	}
	if len(s.Itinerary()) != 0 {
		t.Fatalf("default itinerary not empty: %v", s.Itinerary())
	}
}

func TestCreateAndSwitchMission(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddWaypoint(ctx, "Tirana")

	id := s.CreateMission(ctx, "Operation Bravo")
	if s.CurrentMissionID() == id {
		t.Fatal("create must not switch the active pointer")
	}

	if !s.SwitchMission(ctx, id) {
		t.Fatal("switch to known mission failed")
	}
	if got := s.Itinerary(); len(got) != 0 {
		t.Fatalf("new mission itinerary = %v, want empty", got)
	}

	if s.SwitchMission(ctx, "mission_nope") {
		t.Fatal("switch to unknown mission should be a no-op")
	}
}

func TestCreateMissionDefaultName(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.CreateMission(context.Background(), "")
	m, _ := s.Mission(id)
	if m.Name != "Operation 2" {
		t.Fatalf("generated name = %q, want Operation 2", m.Name)
	}
}

func TestAddWaypointSetSemantics(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if !s.AddWaypoint(ctx, "Tirana") {
		t.Fatal("first add failed")
	}
	if s.AddWaypoint(ctx, "Tirana") {
		t.Fatal("duplicate add should be a no-op")
	}
	if got := s.Itinerary(); len(got) != 1 {
		t.Fatalf("itinerary = %v, want single entry", got)
	}
}

func TestMoveWaypointBoundaries(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddWaypoint(ctx, "Tirana")
	s.AddWaypoint(ctx, "Berat")
	s.AddWaypoint(ctx, "Butrint")

	if s.MoveWaypointUp(ctx, "Tirana") {
		t.Fatal("moving first element up should be a no-op")
	}
	if s.MoveWaypointDown(ctx, "Butrint") {
		t.Fatal("moving last element down should be a no-op")
	}

	if !s.MoveWaypointUp(ctx, "Berat") {
		t.Fatal("move up failed")
	}
	want := []string{"Berat", "Tirana", "Butrint"}
	got := s.Itinerary()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("itinerary = %v, want %v", got, want)
		}
	}

	if !s.MoveWaypointDown(ctx, "Berat") {
		t.Fatal("move down failed")
	}
	if got := s.Itinerary(); got[0] != "Tirana" || got[1] != "Berat" {
		t.Fatalf("itinerary after move down = %v", got)
	}
}

func TestDeleteLastMissionRefused(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.CurrentMissionID()
	if s.DeleteMission(context.Background(), id) {
		t.Fatal("deleting the sole mission must fail")
	}
	if len(s.Missions()) != 1 {
		t.Fatalf("mission collection changed: %v", s.Missions())
	}
}

func TestDeleteActiveMissionMovesPointer(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := s.CurrentMissionID()
	second := s.CreateMission(ctx, "Operation Bravo")
	s.SwitchMission(ctx, second)

	if !s.DeleteMission(ctx, second) {
		t.Fatal("delete failed")
	}
	if s.CurrentMissionID() != first {
		t.Fatalf("active pointer = %q, want %q", s.CurrentMissionID(), first)
	}
}

func TestReplaceItineraryDedupes(t *testing.T) {
	s, _ := newTestStore(t)

	s.ReplaceItinerary(context.Background(), []string{"Berat", "Tirana", "Berat"})

	got := s.Itinerary()
	if len(got) != 2 || got[0] != "Berat" || got[1] != "Tirana" {
		t.Fatalf("itinerary = %v, want [Berat Tirana]", got)
	}
}

func TestItineraryReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddWaypoint(ctx, "Tirana")
	got := s.Itinerary()
	got[0] = "Mutated"

	if s.Itinerary()[0] != "Tirana" {
		t.Fatal("accessor aliases internal storage")
	}
}

func TestReloadRoundTrip(t *testing.T) {
	kv := storage.NewMemoryKVStore()
	ctx := context.Background()

	s := NewMissionStore(ctx, kv)
	second := s.CreateMission(ctx, "Operation Bravo")
	s.SwitchMission(ctx, second)
	s.AddWaypoint(ctx, "Gjirokastër")
	s.AddWaypoint(ctx, "Berat")
	s.UnlockSignal(ctx, "Tirana")
	s.Close()

	reloaded := NewMissionStore(ctx, kv)
	defer reloaded.Close()

	if reloaded.CurrentMissionID() != second {
		t.Fatalf("active mission after reload = %q, want %q", reloaded.CurrentMissionID(), second)
	}
	got := reloaded.Itinerary()
	if len(got) != 2 || got[0] != "Gjirokastër" || got[1] != "Berat" {
		t.Fatalf("itinerary after reload = %v", got)
	}
	if !reloaded.IsUnlocked("Tirana") {
		t.Fatal("unlocked signal lost on reload")
	}
}

func TestLegacyItineraryMigration(t *testing.T) {
	kv := storage.NewMemoryKVStore()
	ctx := context.Background()
	kv.Set(ctx, "albania_itinerary", `["Tirana","Berat"]`)

	s := NewMissionStore(ctx, kv)
	defer s.Close()

	missions := s.Missions()
	if len(missions) != 1 {
		t.Fatalf("got %d missions after migration, want 1", len(missions))
	}
	if missions[0].Name != "Operation Alpha" {
		t.Fatalf("migrated mission name = %q", missions[0].Name)
	}
	got := s.Itinerary()
	if len(got) != 2 || got[0] != "Tirana" || got[1] != "Berat" {
		t.Fatalf("migrated itinerary = %v", got)
	}

	// Migration stamps the schema version so it runs once.
	if kv.Snapshot()["albania_schema_version"] != "1" {
		t.Fatalf("schema version not stamped: %v", kv.Snapshot())
	}
}

func TestDanglingActivePointerSelfHeals(t *testing.T) {
	kv := storage.NewMemoryKVStore()
	ctx := context.Background()
	kv.Set(ctx, "albania_schema_version", "1")
	kv.Set(ctx, "albania_missions", `{"mission_a":{"id":"mission_a","name":"Operation Alpha","targets":["Berat"]}}`)
	kv.Set(ctx, "albania_current_mission_id", "mission_gone")

	s := NewMissionStore(ctx, kv)
	defer s.Close()

	if s.CurrentMissionID() != "mission_a" {
		t.Fatalf("pointer = %q, want healed mission_a", s.CurrentMissionID())
	}
	// Correction is re-persisted immediately.
	if kv.Snapshot()["albania_current_mission_id"] != "mission_a" {
		t.Fatalf("healed pointer not persisted: %v", kv.Snapshot())
	}
}

func TestCorruptMissionsBlobFallsBack(t *testing.T) {
	kv := storage.NewMemoryKVStore()
	ctx := context.Background()
	kv.Set(ctx, "albania_schema_version", "1")
	kv.Set(ctx, "albania_missions", `{not json`)

	s := NewMissionStore(ctx, kv)
	defer s.Close()

	if len(s.Missions()) != 1 {
		t.Fatalf("expected synthesized default mission, got %v", s.Missions())
	}
}

func TestUnlockSignalIdempotentAndClearance(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if s.ClearanceLevel() != 1 {
		t.Fatalf("initial clearance = %d, want 1", s.ClearanceLevel())
	}

	unlockedEvents := 0
	s.Subscribe(EventSignalUnlocked, func(Event) { unlockedEvents++ })

	s.UnlockSignal(ctx, "Tirana")
	s.UnlockSignal(ctx, "Tirana")
	s.UnlockSignal(ctx, "Berat")

	if got := s.UnlockedSignals(); len(got) != 2 {
		t.Fatalf("unlocked = %v, want 2 entries", got)
	}
	if unlockedEvents != 2 {
		t.Fatalf("signalUnlocked published %d times, want 2", unlockedEvents)
	}
	// Two unlocks: min(5, 2/2+1) = 2.
	if s.ClearanceLevel() != 2 {
		t.Fatalf("clearance = %d, want 2", s.ClearanceLevel())
	}

	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		s.UnlockSignal(ctx, name)
	}
	if s.ClearanceLevel() != 5 {
		t.Fatalf("clearance = %d, want capped at 5", s.ClearanceLevel())
	}
}

func TestAddReviewPersistFailure(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	var gotError string
	reviewEvents := 0
	s.Subscribe(EventError, func(e Event) { gotError = e.Message })
	s.Subscribe(EventReviewAdded, func(Event) { reviewEvents++ })

	kv.FailWrites = true
	ok := s.AddReview(ctx, "Tirana", domain.Review{User: "Alex", Stars: 5, Review: "Vibrant city!"})

	if ok {
		t.Fatal("AddReview should report failure when persistence fails")
	}
	if gotError == "" {
		t.Fatal("no error event published")
	}
	if reviewEvents != 0 {
		t.Fatal("reviewAdded published despite persistence failure")
	}
	// The in-memory mutation is retained for the session.
	if len(s.Reviews("Tirana")) != 1 {
		t.Fatalf("in-memory review lost: %v", s.Reviews("Tirana"))
	}
}

func TestAddReviewSuccess(t *testing.T) {
	s, _ := newTestStore(t)

	var got Event
	s.Subscribe(EventReviewAdded, func(e Event) { got = e })

	ok := s.AddReview(context.Background(), "Berat", domain.Review{
		User: "John D.", Stars: 5, Review: "Absolutely stunning.", Date: time.Now(),
	})
	if !ok {
		t.Fatal("AddReview failed")
	}
	if got.PlaceName != "Berat" || got.Review == nil || got.Review.Stars != 5 {
		t.Fatalf("reviewAdded payload = %+v", got)
	}
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	errorEvents := 0
	s.Subscribe(EventError, func(Event) { errorEvents++ })

	kv.FailWrites = true
	s.AddWaypoint(ctx, "Tirana")

	if got := s.Itinerary(); len(got) != 1 || got[0] != "Tirana" {
		t.Fatalf("in-memory mutation lost: %v", got)
	}
	if errorEvents == 0 {
		t.Fatal("no error event for failed persistence")
	}
}

func TestSwitchMissionEventOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	id := s.CreateMission(ctx, "Operation Bravo")

	var order []EventName
	s.Subscribe(EventItineraryChanged, func(Event) { order = append(order, EventItineraryChanged) })
	s.Subscribe(EventMissionSwitched, func(Event) { order = append(order, EventMissionSwitched) })

	s.SwitchMission(ctx, id)

	if len(order) != 2 || order[0] != EventItineraryChanged || order[1] != EventMissionSwitched {
		t.Fatalf("event order = %v", order)
	}
}

func TestSetLocale(t *testing.T) {
	s, _ := newTestStore(t)

	var got string
	s.Subscribe(EventLanguageChanged, func(e Event) { got = e.Locale })

	s.SetLocale("sq")
	if s.Locale() != "sq" || got != "sq" {
		t.Fatalf("locale = %q, event = %q, want sq", s.Locale(), got)
	}
}
