package state

import (
	"context"
	"encoding/json"
	"log"

	"recon-planner-service/internal/domain"
	"recon-planner-service/internal/ports"
)

// Storage keys. The albania_ prefix and blob shapes are kept compatible with
// earlier deployments, including the pre-multi-mission flat itinerary.
const (
	keyMissions        = "albania_missions"
	keyCurrentMission  = "albania_current_mission_id"
	keyLegacyItinerary = "albania_itinerary"
	keySignals         = "albania_sigint"
	keyReviews         = "albania_reviews"
	keySchemaVersion   = "albania_schema_version"
)

const (
	schemaVersionCurrent = "1"
	defaultMissionName   = "Operation Alpha"
)

// loadMissionState reads the persisted mission collection through an explicit
// schema-version check, applying one migration per version transition:
//
//	v0 -> v1: the single flat itinerary blob becomes one default mission in
//	          the multi-mission map.
//
// Unreadable or absent data falls back to a single empty default mission.
// Never returns an error: storage failures degrade to defaults.
func loadMissionState(ctx context.Context, kv ports.KeyValueStore) (map[string]*domain.Mission, bool) {
	version := readRaw(ctx, kv, keySchemaVersion)

	if version == schemaVersionCurrent {
		var persisted map[string]domain.Mission
		if readJSON(ctx, kv, keyMissions, &persisted) && len(persisted) > 0 {
			return toMissionPtrs(persisted), false
		}
		return nil, false
	}

	// v0: missions may exist from a deployment that predates the version
	// stamp; adopt them unchanged. Otherwise migrate the flat itinerary.
	var persisted map[string]domain.Mission
	if readJSON(ctx, kv, keyMissions, &persisted) && len(persisted) > 0 {
		return toMissionPtrs(persisted), true
	}

	var legacy []string
	if readJSON(ctx, kv, keyLegacyItinerary, &legacy) {
		m := &domain.Mission{ID: newMissionID(), Name: defaultMissionName, Targets: legacy}
		log.Printf("migrated legacy itinerary: targets=%d", len(legacy))
		return map[string]*domain.Mission{m.ID: m}, true
	}

	return nil, true
}

func toMissionPtrs(persisted map[string]domain.Mission) map[string]*domain.Mission {
	missions := make(map[string]*domain.Mission, len(persisted))
	for id, m := range persisted {
		mission := m.Clone()
		if mission.ID == "" {
			mission.ID = id
		}
		missions[id] = &mission
	}
	return missions
}

// readRaw fetches a key, treating any storage failure as absence.
func readRaw(ctx context.Context, kv ports.KeyValueStore, key string) string {
	value, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Printf("storage read failed: key=%s err=%v", key, err)
		return ""
	}
	if !ok {
		return ""
	}
	return value
}

// readJSON fetches and decodes a JSON blob. A missing key, storage failure,
// or corrupt blob reports false so callers fall back to defaults.
func readJSON(ctx context.Context, kv ports.KeyValueStore, key string, out any) bool {
	raw := readRaw(ctx, kv, key)
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("corrupt state blob: key=%s err=%v", key, err)
		return false
	}
	return true
}
