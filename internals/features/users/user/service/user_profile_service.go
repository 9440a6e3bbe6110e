package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/constants"
	"eventorganizer_backend/internals/features/users/user/model"
	helper "eventorganizer_backend/internals/helpers"
)

// GetRole returns the stored role for a principal, or the default "user"
// role when no profile row exists. Reads never create a record.
func GetRole(db *gorm.DB, userID uuid.UUID) (string, error) {
	var profile model.UserProfileModel
	err := db.Where("profile_user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return constants.RoleUser, nil
	}
	if err != nil {
		return "", err
	}
	if !constants.IsValidRole(profile.ProfileRole) {
		return constants.RoleUser, nil
	}
	return profile.ProfileRole, nil
}

// EnsureProfile creates a default "user" profile row if none exists.
// Idempotent; called on registration and safe to call again.
func EnsureProfile(db *gorm.DB, userID uuid.UUID) error {
	profile := model.UserProfileModel{
		ProfileUserID: userID,
		ProfileRole:   constants.RoleUser,
	}
	err := db.Where("profile_user_id = ?", userID).
		FirstOrCreate(&profile).Error
	if err != nil && helper.IsUniqueViolation(err) {
		// concurrent EnsureProfile already created it
		return nil
	}
	return err
}

// SetRole overwrites a principal's role. Caller authorization (admin only)
// is enforced upstream by the route's role gate, not here. Returns the
// updated record; fails with ValidationError when newRole is outside the
// closed set, NotFound when the user does not exist.
func SetRole(db *gorm.DB, userID uuid.UUID, newRole string) (model.UserProfileModel, error) {
	var profile model.UserProfileModel

	if !constants.IsValidRole(newRole) {
		return profile, helper.ErrValidation("invalid role", map[string][]string{
			"role": {"must be one of: user, moderator, admin"},
		})
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.UserModel{}).Where("id = ?", userID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return helper.ErrNotFound("user not found")
		}

		err := tx.Where("profile_user_id = ?", userID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = model.UserProfileModel{
				ProfileUserID: userID,
				ProfileRole:   newRole,
			}
			return tx.Create(&profile).Error
		}
		if err != nil {
			return err
		}

		profile.ProfileRole = newRole
		return tx.Save(&profile).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if txErr != nil {
		return model.UserProfileModel{}, txErr
	}
	return profile, nil
}
