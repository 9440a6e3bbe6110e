package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/features/events/moderation/dto"
	"eventorganizer_backend/internals/features/events/moderation/model"
	"eventorganizer_backend/internals/features/events/moderation/service"
	helper "eventorganizer_backend/internals/helpers"
)

var validate = validator.New()

type RequestController struct {
	DB *gorm.DB
}

func NewRequestController(db *gorm.DB) *RequestController {
	return &RequestController{DB: db}
}

// CreateRequest handles POST /api/requests. Any authenticated user may file
// a proposal; it lands in the pending queue.
func (ctrl *RequestController) CreateRequest(c *fiber.Ctx) error {
	userID, ok := helper.GetUserIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body dto.CreateRequestDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "Validation failed", validationFields(err))
	}

	request, err := service.SubmitProposal(ctrl.DB, userID, body)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	log.Printf("[INFO] request %s submitted (%s/%s) by %s", request.RequestID, request.RequestType, request.RequestAction, userID)
	return helper.JsonCreated(c, "Request submitted for moderation", dto.ToRequestDTO(request))
}

// GetAllRequests handles GET /api/requests. Moderators and admins see the
// whole queue, regular users only their own submissions.
func (ctrl *RequestController) GetAllRequests(c *fiber.Ctx) error {
	userID, ok := helper.GetUserIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	role := helper.GetRoleFromLocals(c)

	paging := helper.ResolvePaging(c, 20, 100)
	rows, total, err := service.ListProposals(ctrl.DB, userID, role, paging)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Requests fetched successfully", dto.ToRequestDTOs(rows), &pagination)
}

// GetRequestByID handles GET /api/requests/:id with the same visibility
// rules as the list.
func (ctrl *RequestController) GetRequestByID(c *fiber.Ctx) error {
	userID, ok := helper.GetUserIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	role := helper.GetRoleFromLocals(c)

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	request, err := service.GetProposal(ctrl.DB, userID, role, requestID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Request fetched successfully", dto.ToRequestDTO(request))
}

// ReviewRequest handles PATCH /api/requests/:id. Approval replays the
// proposal against the live tables; rejection just retires it. Both leave
// the queue without the row.
func (ctrl *RequestController) ReviewRequest(c *fiber.Ctx) error {
	reviewerID, ok := helper.GetUserIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	role := helper.GetRoleFromLocals(c)

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	var body dto.ReviewRequestDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "Validation failed", validationFields(err))
	}

	result, err := service.ReviewProposal(ctrl.DB, reviewerID, role, requestID, body.Status)
	if err != nil {
		log.Printf("[ERROR] review of request %s failed: %v", requestID, err)
		return helper.JsonAppError(c, err)
	}

	log.Printf("[INFO] request %s reviewed as %s by %s", requestID, result.Request.RequestStatus, reviewerID)

	if result.Request.RequestStatus == model.StatusRejected {
		return helper.JsonOK(c, "Request rejected", dto.ToRequestDTO(result.Request))
	}
	if result.Deleted {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return helper.JsonOK(c, "Request approved and applied", result.Entity)
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
