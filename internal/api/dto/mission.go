package dto

type MissionResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Targets []string `json:"targets"`
}

type ListMissionsResponse struct {
	Missions  []MissionResponse `json:"missions"`
	CurrentID string            `json:"current_id"`
}

type CreateMissionRequest struct {
	Name string `json:"name"`
}

type CreateMissionResponse struct {
	ID string `json:"id"`
}

type SwitchMissionRequest struct {
	ID string `json:"id"`
}

type DeleteMissionRequest struct {
	ID string `json:"id"`
}

type RenameMissionRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItineraryResponse struct {
	Waypoints []string `json:"waypoints"`
}

type WaypointRequest struct {
	Name string `json:"name"`
}

type MoveWaypointRequest struct {
	Name string `json:"name"`
	// Direction is "up" or "down".
	Direction string `json:"direction"`
}

type ReplaceItineraryRequest struct {
	Waypoints []string `json:"waypoints"`
}
