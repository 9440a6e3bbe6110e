package model

import (
	"time"

	"github.com/google/uuid"

	categoryModel "eventorganizer_backend/internals/features/events/category/model"
	locationModel "eventorganizer_backend/internals/features/events/location/model"
	userModel "eventorganizer_backend/internals/features/users/user/model"
)

// EventModel represents the events table. Author deletion cascades to the
// event; location/category deletion only clears the reference.
type EventModel struct {
	EventID          uuid.UUID  `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventTitle       string     `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventDescription string     `gorm:"column:event_description;type:text" json:"event_description"`
	EventStartTime   time.Time  `gorm:"column:event_start_time;not null" json:"event_start_time"`
	EventEndTime     time.Time  `gorm:"column:event_end_time;not null" json:"event_end_time"`
	EventAuthorID    *uuid.UUID `gorm:"column:event_author_id;type:uuid;index" json:"event_author_id"`
	EventLocationID  *uuid.UUID `gorm:"column:event_location_id;type:uuid" json:"event_location_id"`
	EventCategoryID  *uuid.UUID `gorm:"column:event_category_id;type:uuid" json:"event_category_id"`
	EventIsPublic    bool       `gorm:"column:event_is_public;not null;default:false" json:"event_is_public"`
	EventCreatedAt   time.Time  `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt   time.Time  `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`

	Author   *userModel.UserModel         `gorm:"foreignKey:EventAuthorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Location *locationModel.LocationModel `gorm:"foreignKey:EventLocationID;references:LocationID;constraint:OnDelete:SET NULL" json:"-"`
	Category *categoryModel.CategoryModel `gorm:"foreignKey:EventCategoryID;references:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

func (EventModel) TableName() string {
	return "events"
}
