package controller

import (
	"errors"
	"log"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/features/events/location/dto"
	"eventorganizer_backend/internals/features/events/location/model"
	"eventorganizer_backend/internals/features/events/location/service"
	requestDTO "eventorganizer_backend/internals/features/events/moderation/dto"
	requestModel "eventorganizer_backend/internals/features/events/moderation/model"
	moderationService "eventorganizer_backend/internals/features/events/moderation/service"
	helper "eventorganizer_backend/internals/helpers"
	"eventorganizer_backend/internals/policy"
)

var validate = validator.New()

type LocationController struct {
	DB *gorm.DB
}

func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{DB: db}
}

// GetAllLocations handles GET /api/locations.
func (ctrl *LocationController) GetAllLocations(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.LocationModel{}).Count(&total).Error; err != nil {
		return helper.JsonAppError(c, err)
	}

	var locations []model.LocationModel
	if err := ctrl.DB.Order("location_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&locations).Error; err != nil {
		return helper.JsonAppError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Locations fetched successfully", dto.ToLocationDTOs(locations), &pagination)
}

// GetLocationByID handles GET /api/locations/:id.
func (ctrl *LocationController) GetLocationByID(c *fiber.Ctx) error {
	locationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid location ID")
	}

	var location model.LocationModel
	if err := ctrl.DB.First(&location, "location_id = ?", locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Location not found")
		}
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Location fetched successfully", dto.ToLocationDTO(location))
}

// CreateLocation handles POST /api/locations. Direct for moderators and
// admins, deferred into the moderation queue for the user role.
func (ctrl *LocationController) CreateLocation(c *fiber.Ctx) error {
	userID, ok := helper.GetUserIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body dto.CreateLocationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "Validation failed", validationFields(err))
	}

	p := policy.Principal{Authenticated: true, Role: helper.GetRoleFromLocals(c)}
	switch policy.Decide(p, policy.ActionCreate, policy.ResourceLocation) {
	case policy.Allow:
		location, err := service.CreateLocation(ctrl.DB, body)
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		log.Printf("[INFO] location %s created by %s", location.LocationID, userID)
		return helper.JsonCreated(c, "Location created successfully", dto.ToLocationDTO(location))

	case policy.Defer:
		data, err := sonic.Marshal(body)
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		request, err := moderationService.SubmitProposal(ctrl.DB, userID, requestDTO.CreateRequestDTO{
			RequestType: requestModel.RequestTypeLocation,
			Action:      requestModel.ActionCreate,
			Data:        data,
		})
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		return helper.JsonCreated(c, "Change submitted for moderation", requestDTO.ToRequestDTO(request))

	default:
		return helper.JsonError(c, fiber.StatusForbidden, "Forbidden")
	}
}

// UpdateLocation handles PATCH /api/locations/:id (moderator and admin only).
func (ctrl *LocationController) UpdateLocation(c *fiber.Ctx) error {
	locationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid location ID")
	}

	var body dto.UpdateLocationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "Validation failed", validationFields(err))
	}

	location, err := service.UpdateLocation(ctrl.DB, locationID, body)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Location updated successfully", dto.ToLocationDTO(location))
}

// DeleteLocation handles DELETE /api/locations/:id. Events referencing the
// location survive with the reference set to null.
func (ctrl *LocationController) DeleteLocation(c *fiber.Ctx) error {
	locationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid location ID")
	}

	if err := service.DeleteLocation(ctrl.DB, locationID); err != nil {
		return helper.JsonAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
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
