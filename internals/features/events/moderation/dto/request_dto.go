package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	categoryDTO "eventorganizer_backend/internals/features/events/category/dto"
	eventDTO "eventorganizer_backend/internals/features/events/event/dto"
	locationDTO "eventorganizer_backend/internals/features/events/location/dto"
	"eventorganizer_backend/internals/features/events/moderation/model"
	helper "eventorganizer_backend/internals/helpers"
)

var validatePayload = validator.New()

// ============================
// Request DTO
// ============================

type CreateRequestDTO struct {
	RequestType string          `json:"request_type" validate:"required,oneof=event category location"`
	Action      string          `json:"action" validate:"omitempty,oneof=create update delete"`
	Data        json.RawMessage `json:"data"`
	EventID     *uuid.UUID      `json:"event,omitempty"`
}

type ReviewRequestDTO struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// ============================
// Response DTO
// ============================

type RequestDTO struct {
	RequestID         string          `json:"request_id"`
	RequestUserID     string          `json:"request_user_id"`
	RequestType       string          `json:"request_type"`
	RequestAction     string          `json:"request_action"`
	RequestData       json.RawMessage `json:"request_data"`
	RequestStatus     string          `json:"request_status"`
	RequestEventID    *string         `json:"request_event_id,omitempty"`
	RequestReviewedBy *string         `json:"request_reviewed_by,omitempty"`
	RequestCreatedAt  time.Time       `json:"request_created_at"`
	RequestUpdatedAt  time.Time       `json:"request_updated_at"`
}

func ToRequestDTO(r model.RequestModel) RequestDTO {
	var eventID, reviewedBy *string
	if r.RequestEventID != nil {
		s := r.RequestEventID.String()
		eventID = &s
	}
	if r.RequestReviewedBy != nil {
		s := r.RequestReviewedBy.String()
		reviewedBy = &s
	}
	return RequestDTO{
		RequestID:         r.RequestID.String(),
		RequestUserID:     r.RequestUserID.String(),
		RequestType:       r.RequestType,
		RequestAction:     r.RequestAction,
		RequestData:       json.RawMessage(r.RequestData),
		RequestStatus:     r.RequestStatus,
		RequestEventID:    eventID,
		RequestReviewedBy: reviewedBy,
		RequestCreatedAt:  r.RequestCreatedAt,
		RequestUpdatedAt:  r.RequestUpdatedAt,
	}
}

func ToRequestDTOs(rows []model.RequestModel) []RequestDTO {
	result := make([]RequestDTO, 0, len(rows))
	for _, r := range rows {
		result = append(result, ToRequestDTO(r))
	}
	return result
}

// ============================
// Payload union
// ============================

// DecodePayload turns the opaque proposal data into the typed payload for
// the (kind, action) pair. Unknown fields are rejected so a payload must
// deserialize into exactly the target entity's writable fields. Returns
// ValidationError for unsupported combinations and malformed payloads.
func DecodePayload(requestType, action string, data json.RawMessage) (any, error) {
	switch requestType {
	case model.RequestTypeEvent:
		switch action {
		case model.ActionCreate:
			var p eventDTO.CreateEventRequest
			if err := strictDecode(data, &p); err != nil {
				return nil, err
			}
			if err := validatePayload.Struct(&p); err != nil {
				return nil, helper.ErrValidation("invalid event payload", fieldErrors(err))
			}
			if err := p.ValidateTimeRange(); err != nil {
				return nil, err
			}
			return p, nil
		case model.ActionUpdate:
			var p eventDTO.UpdateEventRequest
			if err := strictDecode(data, &p); err != nil {
				return nil, err
			}
			if err := validatePayload.Struct(&p); err != nil {
				return nil, helper.ErrValidation("invalid event payload", fieldErrors(err))
			}
			return p, nil
		case model.ActionDelete:
			// delete carries no payload beyond the event reference
			if len(bytes.TrimSpace(data)) > 0 && !bytes.Equal(bytes.TrimSpace(data), []byte("{}")) &&
				!bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
				return nil, helper.ErrValidation("delete proposals carry no payload", nil)
			}
			return nil, nil
		}
	case model.RequestTypeCategory:
		if action == model.ActionCreate {
			var p categoryDTO.CreateCategoryRequest
			if err := strictDecode(data, &p); err != nil {
				return nil, err
			}
			if err := validatePayload.Struct(&p); err != nil {
				return nil, helper.ErrValidation("invalid category payload", fieldErrors(err))
			}
			return p, nil
		}
	case model.RequestTypeLocation:
		if action == model.ActionCreate {
			var p locationDTO.CreateLocationRequest
			if err := strictDecode(data, &p); err != nil {
				return nil, err
			}
			if err := validatePayload.Struct(&p); err != nil {
				return nil, helper.ErrValidation("invalid location payload", fieldErrors(err))
			}
			return p, nil
		}
	}
	return nil, helper.ErrValidation("unsupported request_type/action combination", map[string][]string{
		"action": {"only create is supported for " + requestType},
	})
}

// strictDecode uses encoding/json on purpose: sonic has no
// DisallowUnknownFields equivalent and this path needs the exact-fields
// invariant more than it needs speed.
func strictDecode(data json.RawMessage, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return helper.ErrValidation("payload is required", nil)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return helper.ErrValidation("malformed payload: "+err.Error(), nil)
	}
	return nil
}

func fieldErrors(err error) map[string][]string {
	fields := map[string][]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fields[fe.Field()] = append(fields[fe.Field()], fe.Tag())
		}
	}
	return fields
}
