package dto

// SetIntervalRequest is the DTO for overriding a plant's watering interval.
type SetIntervalRequest struct {
	Days int `json:"days"` // 0 clears the override
}

// WaterResponse is the DTO returned after logging a watering.
type WaterResponse struct {
	Plant     PlantResponse `json:"plant"`
	Scheduled bool          `json:"scheduled"` // whether a local reminder was armed
}

// ResyncRequest is the DTO for a reminder resync pass. PlantIDs narrows
// the pass to the listed plants; empty means every plant the caller owns.
type ResyncRequest struct {
	PlantIDs []string `json:"plant_ids,omitempty"`
}

// ResyncResponse is the DTO summarizing a reminder resync pass.
type ResyncResponse struct {
	Scheduled int `json:"scheduled"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// PermissionResponse is the DTO for the notification-permission capability flag.
type PermissionResponse struct {
	Granted bool `json:"granted"`
}
