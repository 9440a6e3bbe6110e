package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/features/users/auth/dto"
	authService "eventorganizer_backend/internals/features/users/auth/service"
	userModel "eventorganizer_backend/internals/features/users/user/model"
	profileService "eventorganizer_backend/internals/features/users/user/service"
	helper "eventorganizer_backend/internals/helpers"
)

var validateAuth = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// =============================
// ➕ Register
// POST /api/auth/register
// =============================
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&body); err != nil {
		fields := map[string][]string{}
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				fields[fe.Field()] = append(fields[fe.Field()], fe.Tag())
			}
		}
		return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "validation failed", fields)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName: body.UserName,
		Email:    body.Email,
		Password: string(hashed),
		IsActive: true,
	}

	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return profileService.EnsureProfile(tx, user.ID)
	})
	if txErr != nil {
		if helper.IsUniqueViolation(txErr) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Username or email already taken")
		}
		log.Println("[ERROR] register:", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register user")
	}

	return helper.JsonCreated(c, "User registered successfully", fiber.Map{
		"id":        user.ID.String(),
		"user_name": user.UserName,
	})
}

// =============================
// 🔑 Login
// POST /api/auth/login
// =============================
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_name and password are required")
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("user_name = ?", body.UserName).First(&user).Error; err != nil {
		// same message for unknown user and bad password
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	role, err := profileService.GetRole(ctrl.DB, user.ID)
	if err != nil {
		log.Println("[ERROR] get role:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve role")
	}

	token, expiresIn, err := authService.CreateAccessToken(user.ID, user.UserName, role)
	if err != nil {
		log.Println("[ERROR] issue token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonOK(c, "Login successful", dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	})
}

// =============================
// 👤 Me
// GET /api/auth/me
// =============================
// Same fail-open behavior as the original role endpoint: a principal with
// no profile row reports the default "user" role.
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, ok := helper.GetUserIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	userName, _ := c.Locals("user_name").(string)
	role := helper.GetRoleFromLocals(c)

	return helper.JsonOK(c, "", dto.MeResponse{
		UserID:   userID.String(),
		UserName: userName,
		Role:     role,
	})
}
