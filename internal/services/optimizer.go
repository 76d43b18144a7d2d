package services

import "recon-planner-service/internal/domain"

// OptimizeRoute reorders an itinerary using a greedy nearest-neighbor pass.
//
// The first waypoint is the anchor (base of operations) and keeps position 0.
// At each step the closest not-yet-placed waypoint to the last placed one is
// appended; ties break toward the earlier entry in remaining-list order so the
// result is deterministic. The algorithm minimizes immediate travel distance
// at each step and does not attempt global optimization (no 2-opt, no exact
// TSP) — itineraries are tens of stops at most.
//
// The output is always a permutation of the input. Inputs of length two or
// fewer are returned unchanged. Waypoints that no longer resolve against the
// catalog cannot be measured; they are appended after the reachable stops in
// their original order.
func OptimizeRoute(waypoints []string, catalog domain.Catalog) []string {
	out := make([]string, len(waypoints))
	copy(out, waypoints)

	if len(out) <= 2 {
		return out
	}

	anchor := catalog.Find(out[0])
	if anchor == nil {
		return out
	}

	remaining := make([]string, 0, len(out)-1)
	unknown := make([]string, 0)
	for _, name := range out[1:] {
		if catalog.Find(name) == nil {
			unknown = append(unknown, name)
			continue
		}
		remaining = append(remaining, name)
	}

	ordered := []string{out[0]}
	current := anchor.Coordinates

	for len(remaining) > 0 {
		bestIdx := 0
		bestDist := domain.Distance(current, catalog.Find(remaining[0]).Coordinates)

		// Strict less keeps the first-encountered waypoint on ties.
		for i := 1; i < len(remaining); i++ {
			d := domain.Distance(current, catalog.Find(remaining[i]).Coordinates)
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}

		next := remaining[bestIdx]
		ordered = append(ordered, next)
		current = catalog.Find(next).Coordinates
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return append(ordered, unknown...)
}

// TotalDistanceMeters sums the leg distances of an itinerary in order,
// skipping waypoints missing from the catalog.
func TotalDistanceMeters(waypoints []string, catalog domain.Catalog) float64 {
	total := 0.0
	var prev *domain.Place

	for _, name := range waypoints {
		place := catalog.Find(name)
		if place == nil {
			continue
		}
		if prev != nil {
			total += domain.Distance(prev.Coordinates, place.Coordinates)
		}
		prev = place
	}

	return total
}
