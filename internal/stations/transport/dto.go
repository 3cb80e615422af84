package transport

import "time"

// CreateStationRequest contains data for provisioning a station (admin only).
type CreateStationRequest struct {
	Code      string  `json:"code" validate:"omitempty,max=64"`
	Name      string  `json:"name" validate:"required,max=200"`
	NameTH    string  `json:"nameTh" validate:"omitempty,max=200"`
	Address   string  `json:"address" validate:"omitempty,max=500"`
	Province  string  `json:"province" validate:"omitempty,max=100"`
	Latitude  float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Brand     string  `json:"brand" validate:"omitempty,max=100"`
	Chargers  int     `json:"chargers" validate:"omitempty,gte=0"`
	Status    string  `json:"status" validate:"omitempty,oneof=active maintenance inactive"`
}

// UpdateStationRequest contains optional station updates.
type UpdateStationRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	NameTH    *string  `json:"nameTh,omitempty" validate:"omitempty,max=200"`
	Address   *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Province  *string  `json:"province,omitempty" validate:"omitempty,max=100"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Brand     *string  `json:"brand,omitempty" validate:"omitempty,max=100"`
	Chargers  *int     `json:"chargers,omitempty" validate:"omitempty,gte=0"`
	Status    *string  `json:"status,omitempty" validate:"omitempty,oneof=active maintenance inactive"`
}

// StationResponse represents a station in API responses.
type StationResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	NameTH    string    `json:"nameTh,omitempty"`
	Address   string    `json:"address,omitempty"`
	Province  string    `json:"province,omitempty"`
	Latitude  float64   `json:"latitude,omitempty"`
	Longitude float64   `json:"longitude,omitempty"`
	Brand     string    `json:"brand,omitempty"`
	Chargers  int       `json:"chargers,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StationListResponse wraps a list of stations.
type StationListResponse struct {
	Items []StationResponse `json:"items"`
	Total int               `json:"total"`
}
