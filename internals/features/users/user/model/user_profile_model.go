package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProfileModel is the one-to-one role record for a principal. The row
// is created lazily on registration; role lookups never create it and fall
// back to the default "user" role when it is missing.
type UserProfileModel struct {
	ProfileID        uuid.UUID `gorm:"column:profile_id;type:uuid;default:gen_random_uuid();primaryKey" json:"profile_id"`
	ProfileUserID    uuid.UUID `gorm:"column:profile_user_id;type:uuid;not null;uniqueIndex" json:"profile_user_id"`
	ProfileRole      string    `gorm:"column:profile_role;type:varchar(20);not null;default:'user'" json:"profile_role"`
	ProfileCreatedAt time.Time `gorm:"column:profile_created_at;autoCreateTime" json:"profile_created_at"`
	ProfileUpdatedAt time.Time `gorm:"column:profile_updated_at;autoUpdateTime" json:"profile_updated_at"`

	User *UserModel `gorm:"foreignKey:ProfileUserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserProfileModel) TableName() string {
	return "user_profiles"
}
