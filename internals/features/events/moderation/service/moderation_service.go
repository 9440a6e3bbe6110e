package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/constants"
	categoryDTO "eventorganizer_backend/internals/features/events/category/dto"
	categoryService "eventorganizer_backend/internals/features/events/category/service"
	eventDTO "eventorganizer_backend/internals/features/events/event/dto"
	eventModel "eventorganizer_backend/internals/features/events/event/model"
	eventService "eventorganizer_backend/internals/features/events/event/service"
	locationDTO "eventorganizer_backend/internals/features/events/location/dto"
	locationService "eventorganizer_backend/internals/features/events/location/service"
	"eventorganizer_backend/internals/features/events/moderation/dto"
	"eventorganizer_backend/internals/features/events/moderation/model"
	helper "eventorganizer_backend/internals/helpers"
	"eventorganizer_backend/internals/observability"
)

// ReviewResult is what a finished review hands back to the controller.
// Entity carries the created/updated row's DTO after an approved
// create/update, Deleted marks an approved delete.
type ReviewResult struct {
	Request model.RequestModel
	Entity  any
	Deleted bool
}

// SubmitProposal validates and stores a pending change request. The payload
// is decoded strictly up front so a proposal that could never replay is
// rejected at submission, not at review time.
func SubmitProposal(db *gorm.DB, userID uuid.UUID, in dto.CreateRequestDTO) (model.RequestModel, error) {
	var request model.RequestModel

	action := in.Action
	if action == "" {
		action = model.ActionCreate
	}

	if _, err := dto.DecodePayload(in.RequestType, action, in.Data); err != nil {
		return request, err
	}

	// update/delete proposals must name an existing target event
	if in.RequestType == model.RequestTypeEvent && action != model.ActionCreate {
		if in.EventID == nil {
			return request, helper.ErrValidation("event reference is required", map[string][]string{
				"event": {"required for update and delete proposals"},
			})
		}
		var cnt int64
		if err := db.Model(&eventModel.EventModel{}).
			Where("event_id = ?", *in.EventID).Count(&cnt).Error; err != nil {
			return request, err
		}
		if cnt == 0 {
			return request, helper.ErrNotFound("event not found")
		}
	}

	data := in.Data
	if len(data) == 0 {
		data = []byte("{}")
	}

	request = model.RequestModel{
		RequestUserID: userID,
		RequestType:   in.RequestType,
		RequestAction: action,
		RequestData:   datatypes.JSON(data),
		RequestStatus: model.StatusPending,
	}
	if in.RequestType == model.RequestTypeEvent && action != model.ActionCreate {
		request.RequestEventID = in.EventID
	}

	if err := db.Create(&request).Error; err != nil {
		return model.RequestModel{}, err
	}

	observability.ProposalsSubmitted.WithLabelValues(request.RequestType, request.RequestAction).Inc()
	return request, nil
}

// ListProposals returns pending requests: all of them for moderators and
// admins, only the caller's own otherwise.
func ListProposals(db *gorm.DB, userID uuid.UUID, role string, paging helper.Paging) ([]model.RequestModel, int64, error) {
	q := db.Model(&model.RequestModel{})
	if !isReviewer(role) {
		q = q.Where("request_user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.RequestModel
	if err := q.Order("request_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetProposal loads one request visible to the caller.
func GetProposal(db *gorm.DB, userID uuid.UUID, role string, requestID uuid.UUID) (model.RequestModel, error) {
	var request model.RequestModel
	q := db.Where("request_id = ?", requestID)
	if !isReviewer(role) {
		q = q.Where("request_user_id = ?", userID)
	}
	if err := q.First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return request, helper.ErrNotFound("request not found")
		}
		return request, err
	}
	return request, nil
}

// ReviewProposal resolves a pending request. A rejection just retires the
// row. An approval replays the stored mutation against the live tables and
// retires the row in the same serializable transaction, so a replay failure
// leaves the proposal pending and untouched.
func ReviewProposal(db *gorm.DB, reviewerID uuid.UUID, role string, requestID uuid.UUID, status string) (*ReviewResult, error) {
	if !isReviewer(role) {
		return nil, helper.ErrForbidden("only moderators and admins may review requests")
	}
	if status != model.StatusApproved && status != model.StatusRejected {
		return nil, helper.ErrValidation("invalid review status", map[string][]string{
			"status": {"must be approved or rejected"},
		})
	}

	// Unscoped so an already-retired request distinguishes InvalidState
	// from NotFound.
	var request model.RequestModel
	if err := db.Unscoped().First(&request, "request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("request not found")
		}
		return nil, err
	}
	if request.IsTerminal() {
		return nil, helper.ErrInvalidState("request has already been reviewed")
	}

	result := &ReviewResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		if status == model.StatusApproved {
			entity, deleted, err := replay(tx, request)
			if err != nil {
				return err
			}
			result.Entity = entity
			result.Deleted = deleted
		}
		return retire(tx, &request, reviewerID, status)
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		if status == model.StatusApproved {
			observability.ProposalsReviewed.WithLabelValues(request.RequestType, "failed").Inc()
		}
		return nil, err
	}

	if status == model.StatusApproved {
		observability.ProposalsReviewed.WithLabelValues(request.RequestType, "applied").Inc()
	} else {
		observability.ProposalsReviewed.WithLabelValues(request.RequestType, "rejected").Inc()
	}

	result.Request = request
	return result, nil
}

// retire marks the request terminal and soft-deletes it, which is what
// removes it from the pending queue.
func retire(tx *gorm.DB, request *model.RequestModel, reviewerID uuid.UUID, status string) error {
	request.RequestStatus = status
	request.RequestReviewedBy = &reviewerID
	if err := tx.Save(request).Error; err != nil {
		return err
	}
	return tx.Delete(request).Error
}

// replay applies the stored mutation on behalf of the submitter. Ownership
// is re-checked here, at approval time, because the target may have changed
// hands since submission.
func replay(tx *gorm.DB, request model.RequestModel) (any, bool, error) {
	payload, err := dto.DecodePayload(request.RequestType, request.RequestAction, []byte(request.RequestData))
	if err != nil {
		return nil, false, err
	}

	switch request.RequestType {
	case model.RequestTypeEvent:
		switch request.RequestAction {
		case model.ActionCreate:
			in := payload.(eventDTO.CreateEventRequest)
			submitter := request.RequestUserID
			event, err := eventService.CreateEvent(tx, &submitter, in)
			if err != nil {
				return nil, false, err
			}
			return eventDTO.ToEventDTO(event), false, nil

		case model.ActionUpdate:
			if request.RequestEventID == nil {
				return nil, false, helper.ErrValidation("request has no target event", nil)
			}
			in := payload.(eventDTO.UpdateEventRequest)
			submitter := request.RequestUserID
			event, err := eventService.UpdateEvent(tx, *request.RequestEventID, &submitter, in)
			if err != nil {
				return nil, false, err
			}
			return eventDTO.ToEventDTO(event), false, nil

		case model.ActionDelete:
			if request.RequestEventID == nil {
				return nil, false, helper.ErrValidation("request has no target event", nil)
			}
			submitter := request.RequestUserID
			if err := eventService.DeleteEvent(tx, *request.RequestEventID, &submitter); err != nil {
				return nil, false, err
			}
			return nil, true, nil
		}

	case model.RequestTypeCategory:
		in := payload.(categoryDTO.CreateCategoryRequest)
		category, err := categoryService.CreateCategory(tx, in)
		if err != nil {
			return nil, false, err
		}
		return categoryDTO.ToCategoryDTO(category), false, nil

	case model.RequestTypeLocation:
		in := payload.(locationDTO.CreateLocationRequest)
		location, err := locationService.CreateLocation(tx, in)
		if err != nil {
			return nil, false, err
		}
		return locationDTO.ToLocationDTO(location), false, nil
	}

	return nil, false, helper.ErrValidation("unsupported request_type/action combination", nil)
}

func isReviewer(role string) bool {
	return role == constants.RoleModerator || role == constants.RoleAdmin
}
