package request

// CreateStationRequest represents a create station request
type CreateStationRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Brand   *string `json:"brand" binding:"omitempty,max=100"`
	Address string  `json:"address" binding:"required,max=500"`
}

// UpdateStationRequest represents a partial station update
type UpdateStationRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Brand   *string `json:"brand" binding:"omitempty,max=100"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}
