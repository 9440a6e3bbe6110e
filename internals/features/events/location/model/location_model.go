package model

import (
	"time"

	"github.com/google/uuid"
)

// LocationModel represents the locations table. Same one-time linkage rule
// as categories: location_event_id is unique, so a one-time location can
// back at most one event.
type LocationModel struct {
	LocationID        uuid.UUID  `gorm:"column:location_id;type:uuid;default:gen_random_uuid();primaryKey" json:"location_id"`
	LocationName      string     `gorm:"column:location_name;type:varchar(255);not null" json:"location_name"`
	LocationAddress   string     `gorm:"column:location_address;type:varchar(255)" json:"location_address"`
	LocationCity      string     `gorm:"column:location_city;type:varchar(100)" json:"location_city"`
	LocationCapacity  int        `gorm:"column:location_capacity;not null;default:0" json:"location_capacity"`
	LocationIsOneTime bool       `gorm:"column:location_is_one_time;not null;default:false" json:"location_is_one_time"`
	LocationEventID   *uuid.UUID `gorm:"column:location_event_id;type:uuid;uniqueIndex" json:"location_event_id"`
	LocationCreatedAt time.Time  `gorm:"column:location_created_at;autoCreateTime" json:"location_created_at"`
	LocationUpdatedAt time.Time  `gorm:"column:location_updated_at;autoUpdateTime" json:"location_updated_at"`
}

func (LocationModel) TableName() string {
	return "locations"
}
