package services

import (
	"fmt"
	"math"

	"recon-planner-service/internal/domain"
)

// Default cruise speed used for travel-time estimates.
const DefaultSpeedKmh = 50.0

// Visit length assumed for places without a crowd profile.
const defaultVisitMinutes = 60

// Kinds of timeline entries.
const (
	EntryStart  = "start"
	EntryTarget = "target"
	EntryEnd    = "end"
)

// Crowd-overlap risk labels attached to target entries.
const (
	CrowdRiskHigh     = "HIGH"
	CrowdRiskModerate = "MODERATE"
	CrowdRiskLow      = "LOW"
	CrowdRiskUnknown  = "UNKNOWN"
)

// A single node on the mission timeline. Times are minutes from midnight of
// day zero and may exceed 24h for long itineraries; display wraps modulo 24h.
// TravelMinutes is the transit segment preceding the stop; it is zero for the
// first stop (there is no segment before it) and for the synthetic entries.
type TimelineEntry struct {
	Kind          string
	Name          string
	ArriveMinutes int
	DepartMinutes int
	VisitMinutes  int
	TravelMinutes int
	CrowdRisk     string
}

// BuildTimeline expands an itinerary into arrival and departure times assuming
// a constant travel speed, beginning at startMinutes (minutes from midnight).
// It produces a synthetic start entry, one target entry per resolvable
// waypoint, and a synthetic end entry at the final departure. Waypoints
// missing from the catalog are skipped.
func BuildTimeline(waypoints []string, startMinutes int, speedKmh float64, catalog domain.Catalog) []TimelineEntry {
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}
	metersPerMinute := speedKmh * 1000 / 60

	entries := []TimelineEntry{{
		Kind:          EntryStart,
		Name:          "MISSION START",
		ArriveMinutes: startMinutes,
		DepartMinutes: startMinutes,
	}}

	current := startMinutes
	var prev *domain.Place

	for _, name := range waypoints {
		place := catalog.Find(name)
		if place == nil {
			continue
		}

		travel := 0
		if prev != nil {
			dist := domain.Distance(prev.Coordinates, place.Coordinates)
			travel = int(math.Round(dist / metersPerMinute))
			current += travel
		}

		visit := defaultVisitMinutes
		if place.Crowd != nil && place.Crowd.VisitMinutes > 0 {
			visit = place.Crowd.VisitMinutes
		}

		arrival := current
		departure := arrival + visit

		entries = append(entries, TimelineEntry{
			Kind:          EntryTarget,
			Name:          place.Name,
			ArriveMinutes: arrival,
			DepartMinutes: departure,
			VisitMinutes:  visit,
			TravelMinutes: travel,
			CrowdRisk:     crowdOverlapRisk(place, arrival),
		})

		current = departure
		prev = place
	}

	return append(entries, TimelineEntry{
		Kind:          EntryEnd,
		Name:          "MISSION COMPLETE",
		ArriveMinutes: current,
		DepartMinutes: current,
	})
}

// crowdOverlapRisk labels how close the arrival lands to the place's crowd
// peak: within 1.5h is HIGH, within 3h MODERATE, otherwise LOW.
func crowdOverlapRisk(place *domain.Place, arriveMinutes int) string {
	if place.Crowd == nil {
		return CrowdRiskUnknown
	}

	arrivalHour := math.Mod(float64(arriveMinutes)/60, 24)
	diff := math.Abs(arrivalHour - float64(place.Crowd.PeakHour))

	switch {
	case diff < 1.5:
		return CrowdRiskHigh
	case diff < 3:
		return CrowdRiskModerate
	default:
		return CrowdRiskLow
	}
}

// FormatMinutes renders minutes-from-midnight as HH:MM, wrapping past
// midnight. No multi-day rollover tracking: hours simply wrap.
func FormatMinutes(minutes int) string {
	h := (minutes / 60) % 24
	m := minutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// ParseClock converts an "HH:MM" string into minutes from midnight.
func ParseClock(value string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", value, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", value)
	}
	return h*60 + m, nil
}
