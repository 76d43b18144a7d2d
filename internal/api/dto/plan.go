package dto

type OptimizeResponse struct {
	Waypoints           []string `json:"waypoints"`
	TotalDistanceMeters float64  `json:"total_distance_meters"`
}

type TimelineEntryResponse struct {
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	Arrive        string `json:"arrive"`
	Depart        string `json:"depart"`
	VisitMinutes  int    `json:"visit_minutes,omitempty"`
	TravelMinutes int    `json:"travel_minutes,omitempty"`
	CrowdRisk     string `json:"crowd_risk,omitempty"`
}

type TimelineResponse struct {
	Entries []TimelineEntryResponse `json:"entries"`
}

type SegmentRiskResponse struct {
	Waypoint string  `json:"waypoint"`
	Score    float64 `json:"score"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
}

type RiskReportResponse struct {
	Weather     string                `json:"weather"`
	ThreatLevel string                `json:"threat_level"`
	Segments    []SegmentRiskResponse `json:"segments"`
}

type WeatherResponse struct {
	State       string `json:"state"`
	ThreatLevel string `json:"threat_level"`
}

type DossierRequest struct {
	// Format is "html" or "text". Defaults to html.
	Format string `json:"format"`
	Hour   int    `json:"hour"`
}

type DossierResponse struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}
