package services

import (
	"math"

	"recon-planner-service/internal/domain"
)

const (
	// Density assumed for places without a crowd profile.
	defaultDensity = 0.2

	// Width of the Gaussian decay around the peak hour, in hours.
	crowdSigma = 3.0
)

// CrowdDensity estimates the visitor density at a place for a given hour of
// day, in [0,1]. The estimate decays from the profile's peak following a
// Gaussian curve. Pure function: callable at any hypothetical hour to support
// what-if queries independent of the live clock.
//
// The caller normalizes hour into 0..23 before invocation.
func CrowdDensity(place *domain.Place, hour int) float64 {
	if place == nil || place.Crowd == nil {
		return defaultDensity
	}

	diff := math.Abs(float64(hour - place.Crowd.PeakHour))
	decay := math.Exp(-(diff * diff) / (2 * crowdSigma * crowdSigma))

	return place.Crowd.MaxDensity * decay
}
