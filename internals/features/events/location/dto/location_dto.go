package dto

import (
	"time"

	"eventorganizer_backend/internals/features/events/location/model"
)

type LocationDTO struct {
	LocationID        string    `json:"location_id"`
	LocationName      string    `json:"location_name"`
	LocationAddress   string    `json:"location_address"`
	LocationCity      string    `json:"location_city"`
	LocationCapacity  int       `json:"location_capacity"`
	LocationIsOneTime bool      `json:"location_is_one_time"`
	LocationEventID   *string   `json:"location_event_id,omitempty"`
	LocationCreatedAt time.Time `json:"location_created_at"`
}

// CreateLocationRequest is also the (location, create) moderation payload.
type CreateLocationRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Capacity  int    `json:"capacity" validate:"gte=0"`
	IsOneTime bool   `json:"is_one_time"`
}

type UpdateLocationRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	Capacity  *int    `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	IsOneTime *bool   `json:"is_one_time,omitempty"`
}

func ToLocationDTO(m model.LocationModel) LocationDTO {
	var eventID *string
	if m.LocationEventID != nil {
		s := m.LocationEventID.String()
		eventID = &s
	}
	return LocationDTO{
		LocationID:        m.LocationID.String(),
		LocationName:      m.LocationName,
		LocationAddress:   m.LocationAddress,
		LocationCity:      m.LocationCity,
		LocationCapacity:  m.LocationCapacity,
		LocationIsOneTime: m.LocationIsOneTime,
		LocationEventID:   eventID,
		LocationCreatedAt: m.LocationCreatedAt,
	}
}

func ToLocationDTOs(locations []model.LocationModel) []LocationDTO {
	result := make([]LocationDTO, 0, len(locations))
	for _, m := range locations {
		result = append(result, ToLocationDTO(m))
	}
	return result
}
