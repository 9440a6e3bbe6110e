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

	"eventorganizer_backend/internals/features/events/category/dto"
	"eventorganizer_backend/internals/features/events/category/model"
	"eventorganizer_backend/internals/features/events/category/service"
	requestDTO "eventorganizer_backend/internals/features/events/moderation/dto"
	requestModel "eventorganizer_backend/internals/features/events/moderation/model"
	moderationService "eventorganizer_backend/internals/features/events/moderation/service"
	helper "eventorganizer_backend/internals/helpers"
	"eventorganizer_backend/internals/policy"
)

var validate = validator.New()

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GetAllCategories handles GET /api/categories.
func (ctrl *CategoryController) GetAllCategories(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.CategoryModel{}).Count(&total).Error; err != nil {
		return helper.JsonAppError(c, err)
	}

	var categories []model.CategoryModel
	if err := ctrl.DB.Order("category_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&categories).Error; err != nil {
		return helper.JsonAppError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Categories fetched successfully", dto.ToCategoryDTOs(categories), &pagination)
}

// GetCategoryByID handles GET /api/categories/:id.
func (ctrl *CategoryController) GetCategoryByID(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var category model.CategoryModel
	if err := ctrl.DB.First(&category, "category_id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Category not found")
		}
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Category fetched successfully", dto.ToCategoryDTO(category))
}

// CreateCategory handles POST /api/categories. Direct for moderators and
// admins, deferred into the moderation queue for the user role.
func (ctrl *CategoryController) CreateCategory(c *fiber.Ctx) error {
	userID, ok := helper.GetUserIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body dto.CreateCategoryRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "Validation failed", validationFields(err))
	}

	p := policy.Principal{Authenticated: true, Role: helper.GetRoleFromLocals(c)}
	switch policy.Decide(p, policy.ActionCreate, policy.ResourceCategory) {
	case policy.Allow:
		var category model.CategoryModel
		err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
			var txErr error
			category, txErr = service.CreateCategory(tx, body)
			return txErr
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		log.Printf("[INFO] category %s created by %s", category.CategoryID, userID)
		return helper.JsonCreated(c, "Category created successfully", dto.ToCategoryDTO(category))

	case policy.Defer:
		data, err := sonic.Marshal(body)
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		request, err := moderationService.SubmitProposal(ctrl.DB, userID, requestDTO.CreateRequestDTO{
			RequestType: requestModel.RequestTypeCategory,
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

// UpdateCategory handles PATCH /api/categories/:id. No moderation path
// here: category edits are reserved for moderators and admins.
func (ctrl *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var body dto.UpdateCategoryRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "Validation failed", validationFields(err))
	}

	var category model.CategoryModel
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		category, err = service.UpdateCategory(tx, categoryID, body)
		return err
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if txErr != nil {
		return helper.JsonAppError(c, txErr)
	}
	return helper.JsonUpdated(c, "Category updated successfully", dto.ToCategoryDTO(category))
}

// DeleteCategory handles DELETE /api/categories/:id. Events referencing the
// category survive with the reference set to null.
func (ctrl *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	if err := service.DeleteCategory(ctrl.DB, categoryID); err != nil {
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
