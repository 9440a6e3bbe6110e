package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	categoryModel "eventorganizer_backend/internals/features/events/category/model"
	"eventorganizer_backend/internals/features/events/event/dto"
	"eventorganizer_backend/internals/features/events/event/model"
	locationModel "eventorganizer_backend/internals/features/events/location/model"
	helper "eventorganizer_backend/internals/helpers"
)

// The write path for events. Called with the caller's transaction: directly
// by the controller for moderator/admin writes, and by the moderation
// replay for approved proposals. ownerID != nil enforces the ownership
// check the replay needs; moderators pass nil and bypass it.

// CreateEvent builds and persists an event from the create payload.
func CreateEvent(tx *gorm.DB, authorID *uuid.UUID, in dto.CreateEventRequest) (model.EventModel, error) {
	var event model.EventModel

	if err := in.ValidateTimeRange(); err != nil {
		return event, err
	}

	event = model.EventModel{
		EventTitle:       in.Title,
		EventDescription: in.Description,
		EventStartTime:   in.StartTime,
		EventEndTime:     in.EndTime,
		EventAuthorID:    authorID,
		EventLocationID:  in.LocationID,
		EventCategoryID:  in.CategoryID,
		EventIsPublic:    in.IsPublic,
	}

	if err := checkReferences(tx, event.EventLocationID, event.EventCategoryID); err != nil {
		return model.EventModel{}, err
	}

	if err := tx.Create(&event).Error; err != nil {
		return model.EventModel{}, err
	}

	if err := linkOneTimeRefs(tx, &event); err != nil {
		return model.EventModel{}, err
	}
	return event, nil
}

// UpdateEvent applies a partial patch. Absent fields keep their current
// value. With ownerID set, a mismatching author fails with Forbidden.
func UpdateEvent(tx *gorm.DB, eventID uuid.UUID, ownerID *uuid.UUID, in dto.UpdateEventRequest) (model.EventModel, error) {
	var event model.EventModel
	if err := tx.First(&event, "event_id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event, helper.ErrNotFound("event not found")
		}
		return event, err
	}

	if err := checkOwnership(event, ownerID); err != nil {
		return model.EventModel{}, err
	}

	oldCategoryID := event.EventCategoryID
	oldLocationID := event.EventLocationID

	in.Apply(&event)

	if !event.EventStartTime.Before(event.EventEndTime) {
		return model.EventModel{}, helper.ErrValidation("invalid time range", map[string][]string{
			"start_time": {"must be before end_time"},
		})
	}

	if err := checkReferences(tx, event.EventLocationID, event.EventCategoryID); err != nil {
		return model.EventModel{}, err
	}

	if err := tx.Save(&event).Error; err != nil {
		return model.EventModel{}, err
	}

	if err := unlinkReplacedRefs(tx, event, oldCategoryID, oldLocationID); err != nil {
		return model.EventModel{}, err
	}
	if err := linkOneTimeRefs(tx, &event); err != nil {
		return model.EventModel{}, err
	}
	return event, nil
}

// DeleteEvent removes the event. One-shot categories/locations bound to it
// go with it; reusable ones just lose nothing (they were never linked).
func DeleteEvent(tx *gorm.DB, eventID uuid.UUID, ownerID *uuid.UUID) error {
	var event model.EventModel
	if err := tx.First(&event, "event_id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("event not found")
		}
		return err
	}

	if err := checkOwnership(event, ownerID); err != nil {
		return err
	}

	if err := tx.Where("category_event_id = ?", event.EventID).
		Delete(&categoryModel.CategoryModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("location_event_id = ?", event.EventID).
		Delete(&locationModel.LocationModel{}).Error; err != nil {
		return err
	}

	return tx.Delete(&event).Error
}

func checkOwnership(event model.EventModel, ownerID *uuid.UUID) error {
	if ownerID == nil {
		return nil
	}
	if event.EventAuthorID == nil || *event.EventAuthorID != *ownerID {
		return helper.ErrForbidden("you do not own this event")
	}
	return nil
}

// checkReferences verifies that referenced location/category rows exist.
func checkReferences(tx *gorm.DB, locationID, categoryID *uuid.UUID) error {
	if locationID != nil {
		var cnt int64
		if err := tx.Model(&locationModel.LocationModel{}).
			Where("location_id = ?", *locationID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return helper.ErrValidation("unknown location", map[string][]string{
				"location_id": {"does not exist"},
			})
		}
	}
	if categoryID != nil {
		var cnt int64
		if err := tx.Model(&categoryModel.CategoryModel{}).
			Where("category_id = ?", *categoryID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return helper.ErrValidation("unknown category", map[string][]string{
				"category_id": {"does not exist"},
			})
		}
	}
	return nil
}

// linkOneTimeRefs claims one-time categories/locations for the event. The
// unique index on the linkage column makes the claim safe under concurrent
// approvals; a second claim fails with Conflict.
func linkOneTimeRefs(tx *gorm.DB, event *model.EventModel) error {
	if event.EventCategoryID != nil {
		var cat categoryModel.CategoryModel
		if err := tx.First(&cat, "category_id = ?", *event.EventCategoryID).Error; err != nil {
			return err
		}
		if cat.CategoryIsOneTime {
			switch {
			case cat.CategoryEventID == nil:
				cat.CategoryEventID = &event.EventID
				if err := tx.Save(&cat).Error; err != nil {
					if helper.IsUniqueViolation(err) {
						return helper.ErrConflict("one-time category is already in use")
					}
					return err
				}
			case *cat.CategoryEventID != event.EventID:
				return helper.ErrConflict("one-time category is already in use")
			}
		}
	}
	if event.EventLocationID != nil {
		var loc locationModel.LocationModel
		if err := tx.First(&loc, "location_id = ?", *event.EventLocationID).Error; err != nil {
			return err
		}
		if loc.LocationIsOneTime {
			switch {
			case loc.LocationEventID == nil:
				loc.LocationEventID = &event.EventID
				if err := tx.Save(&loc).Error; err != nil {
					if helper.IsUniqueViolation(err) {
						return helper.ErrConflict("one-time location is already in use")
					}
					return err
				}
			case *loc.LocationEventID != event.EventID:
				return helper.ErrConflict("one-time location is already in use")
			}
		}
	}
	return nil
}

// unlinkReplacedRefs releases one-time links the event no longer holds
// after an update swapped its category/location.
func unlinkReplacedRefs(tx *gorm.DB, event model.EventModel, oldCategoryID, oldLocationID *uuid.UUID) error {
	if oldCategoryID != nil && (event.EventCategoryID == nil || *event.EventCategoryID != *oldCategoryID) {
		if err := tx.Model(&categoryModel.CategoryModel{}).
			Where("category_id = ? AND category_event_id = ?", *oldCategoryID, event.EventID).
			Update("category_event_id", nil).Error; err != nil {
			return err
		}
	}
	if oldLocationID != nil && (event.EventLocationID == nil || *event.EventLocationID != *oldLocationID) {
		if err := tx.Model(&locationModel.LocationModel{}).
			Where("location_id = ? AND location_event_id = ?", *oldLocationID, event.EventID).
			Update("location_event_id", nil).Error; err != nil {
			return err
		}
	}
	return nil
}
