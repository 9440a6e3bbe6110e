package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryModel represents the categories table. A one-time category may be
// linked to at most one event; the unique index on category_event_id is
// what holds that invariant under concurrency.
//
// The linkage column is a plain uuid (no typed relation) to keep the
// event package as the single owner of cross-entity associations.
type CategoryModel struct {
	CategoryID        uuid.UUID  `gorm:"column:category_id;type:uuid;default:gen_random_uuid();primaryKey" json:"category_id"`
	CategoryName      string     `gorm:"column:category_name;type:varchar(100);uniqueIndex;not null" json:"category_name"`
	CategorySlug      string     `gorm:"column:category_slug;type:varchar(100);uniqueIndex;not null" json:"category_slug"`
	CategoryIsOneTime bool       `gorm:"column:category_is_one_time;not null;default:false" json:"category_is_one_time"`
	CategoryEventID   *uuid.UUID `gorm:"column:category_event_id;type:uuid;uniqueIndex" json:"category_event_id"`
	CategoryCreatedAt time.Time  `gorm:"column:category_created_at;autoCreateTime" json:"category_created_at"`
	CategoryUpdatedAt time.Time  `gorm:"column:category_updated_at;autoUpdateTime" json:"category_updated_at"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
