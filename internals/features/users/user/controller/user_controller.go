package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/constants"
	"eventorganizer_backend/internals/features/users/user/dto"
	"eventorganizer_backend/internals/features/users/user/model"
	"eventorganizer_backend/internals/features/users/user/service"
	helper "eventorganizer_backend/internals/helpers"
)

var validateUser = validator.New()

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// =============================
// 📄 Get All Users (admin)
// =============================
func (ctrl *UserController) GetAllUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.UserModel{}).Count(&total).Error; err != nil {
		log.Println("[ERROR] count users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve users")
	}

	var users []model.UserModel
	if err := ctrl.DB.Order("created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&users).Error; err != nil {
		log.Println("[ERROR] list users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve users")
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	roles := map[uuid.UUID]string{}
	if len(ids) > 0 {
		var profiles []model.UserProfileModel
		if err := ctrl.DB.Where("profile_user_id IN ?", ids).Find(&profiles).Error; err != nil {
			log.Println("[ERROR] list profiles:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve users")
		}
		for _, p := range profiles {
			roles[p.ProfileUserID] = p.ProfileRole
		}
	}

	result := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		role, ok := roles[u.ID]
		if !ok || !constants.IsValidRole(role) {
			role = constants.RoleUser
		}
		result = append(result, dto.ToUserDTO(u, role))
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", result, &pagination)
}

// =============================
// 🔍 Get User By ID (admin)
// =============================
func (ctrl *UserController) GetUserByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	role, err := service.GetRole(ctrl.DB, user.ID)
	if err != nil {
		log.Println("[ERROR] get role:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve user")
	}

	return helper.JsonOK(c, "", dto.ToUserDTO(user, role))
}

// =============================
// 🔄 Update User Role (admin)
// PATCH /users/:id/update-role
// =============================
func (ctrl *UserController) UpdateUserRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var body dto.UpdateUserRoleRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateUser.Struct(&body); err != nil {
		return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "validation failed", map[string][]string{
			"role": {"must be one of: user, moderator, admin"},
		})
	}

	profile, err := service.SetRole(ctrl.DB, id, body.Role)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	return helper.JsonUpdated(c, "Role updated to "+profile.ProfileRole, fiber.Map{
		"user_id": id.String(),
		"role":    profile.ProfileRole,
	})
}

// =============================
// 🗑️ Delete User (admin)
// =============================
// Cascades at the DB level to owned events, requests and the profile row.
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	if err := ctrl.DB.Delete(&user).Error; err != nil {
		log.Println("[ERROR] delete user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}

	return helper.JsonDeleted(c, "User deleted", fiber.Map{"id": id.String()})
}
