package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/constants"
	categoryController "eventorganizer_backend/internals/features/events/category/controller"
	authMiddleware "eventorganizer_backend/internals/middlewares/auth"
)

// 🏷️ Auth required. Create dispatches on role; update/delete stay with
// moderators and admins.
func CategoryRoutes(router fiber.Router, db *gorm.DB) {
	categoryCtrl := categoryController.NewCategoryController(db)

	categories := router.Group("/categories", authMiddleware.AuthMiddleware(db))

	categories.Get("/", categoryCtrl.GetAllCategories)    // 📄 list categories
	categories.Get("/:id", categoryCtrl.GetCategoryByID)  // 🔍 category detail
	categories.Post("/", categoryCtrl.CreateCategory)     // ➕ create (or propose)

	moderatorOnly := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorModerator("category management"),
		constants.ModeratorAndAbove,
	)
	categories.Patch("/:id", moderatorOnly, categoryCtrl.UpdateCategory)  // ✏️ update
	categories.Delete("/:id", moderatorOnly, categoryCtrl.DeleteCategory) // 🗑️ delete (events keep running)
}
