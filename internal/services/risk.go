package services

import "recon-planner-service/internal/domain"

// Traffic risk contributions per congestion level.
const (
	trafficBaseline = 0.1
	trafficModerate = 0.2
	trafficHeavy    = 0.5
)

// Weighted-sum coefficients for the combined segment risk.
const (
	weatherWeight = 0.3
	crowdWeight   = 0.4
	trafficWeight = 0.3
)

// SegmentRisk scores the risk of traveling to dest at the given hour of day
// under the given weather, in [0,1]. The score combines three normalized
// components: the weather impact, the destination's crowd density, and a
// time-of-day traffic heuristic (cities congest during rush hours).
//
// hour is taken modulo 24 by the caller. dest may be nil when the waypoint
// no longer resolves against the catalog; the crowd component then falls back
// to its default.
func SegmentRisk(weather WeatherState, dest *domain.Place, hour int) float64 {
	weatherRisk := weatherImpact[weather]

	crowdRisk := CrowdDensity(dest, hour)

	trafficRisk := trafficBaseline
	if dest != nil && dest.Category == domain.CategoryCity {
		if isRushHour(hour) {
			trafficRisk = trafficHeavy
		} else {
			trafficRisk = trafficModerate
		}
	}

	total := weatherRisk*weatherWeight + crowdRisk*crowdWeight + trafficRisk*trafficWeight

	return domain.Clamp(total, 0, 1)
}

// Morning rush 08:00-09:59, evening rush 16:00-18:59.
func isRushHour(hour int) bool {
	return hour == 8 || hour == 9 || hour == 16 || hour == 17 || hour == 18
}

// RiskColor maps a risk score to the display color used by map overlays.
func RiskColor(score float64) string {
	switch {
	case score < 0.3:
		return "#00ffcc"
	case score < 0.5:
		return "#ccff00"
	case score < 0.7:
		return "#ffcc00"
	case score < 0.85:
		return "#ff6600"
	default:
		return "#ff3333"
	}
}

// RiskLabel maps a risk score onto the five-step qualitative scale.
func RiskLabel(score float64) string {
	switch {
	case score < 0.3:
		return "SAFE"
	case score < 0.5:
		return "LOW"
	case score < 0.7:
		return "ELEVATED"
	case score < 0.85:
		return "HIGH"
	default:
		return "CRITICAL"
	}
}
