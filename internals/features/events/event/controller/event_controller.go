package controller

import (
	"database/sql"
	"errors"
	"log"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/features/events/event/dto"
	"eventorganizer_backend/internals/features/events/event/model"
	"eventorganizer_backend/internals/features/events/event/service"
	requestDTO "eventorganizer_backend/internals/features/events/moderation/dto"
	requestModel "eventorganizer_backend/internals/features/events/moderation/model"
	moderationService "eventorganizer_backend/internals/features/events/moderation/service"
	helper "eventorganizer_backend/internals/helpers"
	"eventorganizer_backend/internals/policy"
)

var validate = validator.New()

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

func principal(c *fiber.Ctx) policy.Principal {
	if _, ok := helper.GetUserIDFromLocals(c); !ok {
		return policy.Anonymous
	}
	return policy.Principal{Authenticated: true, Role: helper.GetRoleFromLocals(c)}
}

// GetPublicEvents handles GET /api/public-events. No auth: only rows with
// event_is_public = true are visible here.
func (ctrl *EventController) GetPublicEvents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.EventModel{}).
		Where("event_is_public = ?", true).Count(&total).Error; err != nil {
		return helper.JsonAppError(c, err)
	}

	var events []model.EventModel
	if err := ctrl.DB.Where("event_is_public = ?", true).
		Order("event_start_time ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&events).Error; err != nil {
		return helper.JsonAppError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Public events fetched successfully", dto.ToEventDTOs(events), &pagination)
}

// GetAllEvents handles GET /api/events (auth required, all visibility).
func (ctrl *EventController) GetAllEvents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.EventModel{}).Count(&total).Error; err != nil {
		return helper.JsonAppError(c, err)
	}

	var events []model.EventModel
	if err := ctrl.DB.Order("event_start_time ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&events).Error; err != nil {
		return helper.JsonAppError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Events fetched successfully", dto.ToEventDTOs(events), &pagination)
}

// GetEventByID handles GET /api/events/:id.
func (ctrl *EventController) GetEventByID(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var event model.EventModel
	if err := ctrl.DB.First(&event, "event_id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Event fetched successfully", dto.ToEventDTO(event))
}

// CreateEvent handles POST /api/events. Moderators and admins write
// directly; the user role gets the payload converted into a pending
// moderation request instead.
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	userID, ok := helper.GetUserIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body dto.CreateEventRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "Validation failed", validationFields(err))
	}

	switch policy.Decide(principal(c), policy.ActionCreate, policy.ResourceEvent) {
	case policy.Allow:
		var event model.EventModel
		err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
			var txErr error
			event, txErr = service.CreateEvent(tx, &userID, body)
			return txErr
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		log.Printf("[INFO] event %s created by %s", event.EventID, userID)
		return helper.JsonCreated(c, "Event created successfully", dto.ToEventDTO(event))

	case policy.Defer:
		return ctrl.deferToModeration(c, userID, requestModel.ActionCreate, nil, body)

	default:
		return helper.JsonError(c, fiber.StatusForbidden, "Forbidden")
	}
}

// UpdateEvent handles PATCH /api/events/:id.
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	userID, ok := helper.GetUserIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var body dto.UpdateEventRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "Validation failed", validationFields(err))
	}

	switch policy.Decide(principal(c), policy.ActionUpdate, policy.ResourceEvent) {
	case policy.Allow:
		var event model.EventModel
		err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
			var txErr error
			event, txErr = service.UpdateEvent(tx, eventID, nil, body)
			return txErr
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		return helper.JsonUpdated(c, "Event updated successfully", dto.ToEventDTO(event))

	case policy.Defer:
		return ctrl.deferToModeration(c, userID, requestModel.ActionUpdate, &eventID, body)

	default:
		return helper.JsonError(c, fiber.StatusForbidden, "Forbidden")
	}
}

// DeleteEvent handles DELETE /api/events/:id.
func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	userID, ok := helper.GetUserIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	switch policy.Decide(principal(c), policy.ActionDelete, policy.ResourceEvent) {
	case policy.Allow:
		err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
			return service.DeleteEvent(tx, eventID, nil)
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		log.Printf("[INFO] event %s deleted by %s", eventID, userID)
		return c.SendStatus(fiber.StatusNoContent)

	case policy.Defer:
		return ctrl.deferToModeration(c, userID, requestModel.ActionDelete, &eventID, nil)

	default:
		return helper.JsonError(c, fiber.StatusForbidden, "Forbidden")
	}
}

// deferToModeration converts a direct write a regular user attempted into
// a pending request. Re-marshaling the parsed payload keeps exactly the
// writable fields in the stored proposal.
func (ctrl *EventController) deferToModeration(c *fiber.Ctx, userID uuid.UUID, action string, eventID *uuid.UUID, payload any) error {
	var data []byte
	if payload != nil {
		var err error
		data, err = sonic.Marshal(payload)
		if err != nil {
			return helper.JsonAppError(c, err)
		}
	} else {
		data = []byte("{}")
	}

	request, err := moderationService.SubmitProposal(ctrl.DB, userID, requestDTO.CreateRequestDTO{
		RequestType: requestModel.RequestTypeEvent,
		Action:      action,
		Data:        data,
		EventID:     eventID,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	log.Printf("[INFO] event %s by %s deferred to moderation as request %s", action, userID, request.RequestID)
	return helper.JsonCreated(c, "Change submitted for moderation", requestDTO.ToRequestDTO(request))
}

func validationFields(err error) map[string][]string {
	fields := map[string][]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fields[fe.Field()] = append(fields[fe.Field()], fe.Tag())
		}
	}
	return fields
}
