package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/constants"
	userController "eventorganizer_backend/internals/features/users/user/controller"
	authMiddleware "eventorganizer_backend/internals/middlewares/auth"
)

// 🔐 Admin only (user management)
func UserAdminRoutes(router fiber.Router, db *gorm.DB) {
	userCtrl := userController.NewUserController(db)

	users := router.Group("/users",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("user management"),
			constants.AdminOnly,
		),
	)

	users.Get("/", userCtrl.GetAllUsers)                   // 📄 list users
	users.Get("/:id", userCtrl.GetUserByID)                // 🔍 user detail
	users.Patch("/:id/update-role", userCtrl.UpdateUserRole) // 🔄 change role
	users.Delete("/:id", userCtrl.DeleteUser)              // 🗑️ delete user (cascade)
}
