package dto

import (
	"time"

	"github.com/google/uuid"

	"eventorganizer_backend/internals/features/events/event/model"
	helper "eventorganizer_backend/internals/helpers"
)

// ============================
// Response DTO
// ============================

type EventDTO struct {
	EventID          string    `json:"event_id"`
	EventTitle       string    `json:"event_title"`
	EventDescription string    `json:"event_description"`
	EventStartTime   time.Time `json:"event_start_time"`
	EventEndTime     time.Time `json:"event_end_time"`
	EventAuthorID    *string   `json:"event_author_id,omitempty"`
	EventLocationID  *string   `json:"event_location_id,omitempty"`
	EventCategoryID  *string   `json:"event_category_id,omitempty"`
	EventIsPublic    bool      `json:"event_is_public"`
	EventCreatedAt   time.Time `json:"event_created_at"`
	EventUpdatedAt   time.Time `json:"event_updated_at"`
}

// ============================
// Create & Update Request DTO
// ============================

// CreateEventRequest doubles as the moderation payload for
// (event, create) proposals, so its shape is exactly the writable fields.
type CreateEventRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time" validate:"required"`
	EndTime     time.Time  `json:"end_time" validate:"required"`
	LocationID  *uuid.UUID `json:"location_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	IsPublic    bool       `json:"is_public"`
}

// ValidateTimeRange enforces start_time < end_time.
func (r CreateEventRequest) ValidateTimeRange() error {
	if !r.StartTime.Before(r.EndTime) {
		return helper.ErrValidation("invalid time range", map[string][]string{
			"start_time": {"must be before end_time"},
		})
	}
	return nil
}

// UpdateEventRequest carries partial-patch semantics: nil pointers leave
// the current value untouched. Also the (event, update) moderation payload.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	IsPublic    *bool      `json:"is_public,omitempty"`

	// reference patches: present = set, absent = keep current value
	LocationID *uuid.UUID `json:"location_id,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

// Apply patches only the fields present in the request.
func (r UpdateEventRequest) Apply(e *model.EventModel) {
	if r.Title != nil {
		e.EventTitle = *r.Title
	}
	if r.Description != nil {
		e.EventDescription = *r.Description
	}
	if r.StartTime != nil {
		e.EventStartTime = *r.StartTime
	}
	if r.EndTime != nil {
		e.EventEndTime = *r.EndTime
	}
	if r.LocationID != nil {
		e.EventLocationID = r.LocationID
	}
	if r.CategoryID != nil {
		e.EventCategoryID = r.CategoryID
	}
	if r.IsPublic != nil {
		e.EventIsPublic = *r.IsPublic
	}
}

// ============================
// Converter
// ============================

func ToEventDTO(e model.EventModel) EventDTO {
	return EventDTO{
		EventID:          e.EventID.String(),
		EventTitle:       e.EventTitle,
		EventDescription: e.EventDescription,
		EventStartTime:   e.EventStartTime,
		EventEndTime:     e.EventEndTime,
		EventAuthorID:    uuidPtrToString(e.EventAuthorID),
		EventLocationID:  uuidPtrToString(e.EventLocationID),
		EventCategoryID:  uuidPtrToString(e.EventCategoryID),
		EventIsPublic:    e.EventIsPublic,
		EventCreatedAt:   e.EventCreatedAt,
		EventUpdatedAt:   e.EventUpdatedAt,
	}
}

func ToEventDTOs(events []model.EventModel) []EventDTO {
	result := make([]EventDTO, 0, len(events))
	for _, e := range events {
		result = append(result, ToEventDTO(e))
	}
	return result
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
