package dto

type CrowdProfileResponse struct {
	MaxDensity   float64 `json:"max_density"`
	PeakHour     int     `json:"peak_hour"`
	VisitMinutes int     `json:"visit_minutes"`
}

type SignalProfileResponse struct {
	FrequencyMHz float64 `json:"frequency_mhz"`
	Mode         string  `json:"mode"`
	Encryption   int     `json:"encryption"`
	// Intel is only present for signals the caller has unlocked.
	Intel string `json:"intel,omitempty"`
}

type PlaceResponse struct {
	Name     string                 `json:"name"`
	Lat      float64                `json:"lat"`
	Lng      float64                `json:"lng"`
	Category string                 `json:"category"`
	Crowd    *CrowdProfileResponse  `json:"crowd,omitempty"`
	Signal   *SignalProfileResponse `json:"signal,omitempty"`
}

type ListPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}
