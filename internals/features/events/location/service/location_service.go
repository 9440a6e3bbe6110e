package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/features/events/location/dto"
	"eventorganizer_backend/internals/features/events/location/model"
	helper "eventorganizer_backend/internals/helpers"
)

// CreateLocation persists a venue row.
func CreateLocation(tx *gorm.DB, in dto.CreateLocationRequest) (model.LocationModel, error) {
	location := model.LocationModel{
		LocationName:      strings.TrimSpace(in.Name),
		LocationAddress:   strings.TrimSpace(in.Address),
		LocationCity:      strings.TrimSpace(in.City),
		LocationCapacity:  in.Capacity,
		LocationIsOneTime: in.IsOneTime,
	}
	if err := tx.Create(&location).Error; err != nil {
		return model.LocationModel{}, err
	}
	return location, nil
}

// UpdateLocation patches the provided fields only.
func UpdateLocation(tx *gorm.DB, locationID uuid.UUID, in dto.UpdateLocationRequest) (model.LocationModel, error) {
	var location model.LocationModel
	if err := tx.First(&location, "location_id = ?", locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return location, helper.ErrNotFound("location not found")
		}
		return location, err
	}

	if in.Name != nil {
		location.LocationName = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		location.LocationAddress = strings.TrimSpace(*in.Address)
	}
	if in.City != nil {
		location.LocationCity = strings.TrimSpace(*in.City)
	}
	if in.Capacity != nil {
		location.LocationCapacity = *in.Capacity
	}
	if in.IsOneTime != nil {
		location.LocationIsOneTime = *in.IsOneTime
	}

	if err := tx.Save(&location).Error; err != nil {
		return model.LocationModel{}, err
	}
	return location, nil
}

// DeleteLocation removes the venue. Events referencing it fall back to a
// null location via the SET NULL constraint.
func DeleteLocation(tx *gorm.DB, locationID uuid.UUID) error {
	res := tx.Delete(&model.LocationModel{}, "location_id = ?", locationID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound("location not found")
	}
	return nil
}
