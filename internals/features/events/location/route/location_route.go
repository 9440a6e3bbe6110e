package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/constants"
	locationController "eventorganizer_backend/internals/features/events/location/controller"
	authMiddleware "eventorganizer_backend/internals/middlewares/auth"
)

// 📍 Auth required. Create dispatches on role; update/delete stay with
// moderators and admins.
func LocationRoutes(router fiber.Router, db *gorm.DB) {
	locationCtrl := locationController.NewLocationController(db)

	locations := router.Group("/locations", authMiddleware.AuthMiddleware(db))

	locations.Get("/", locationCtrl.GetAllLocations)    // 📄 list locations
	locations.Get("/:id", locationCtrl.GetLocationByID) // 🔍 location detail
	locations.Post("/", locationCtrl.CreateLocation)    // ➕ create (or propose)

	moderatorOnly := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorModerator("location management"),
		constants.ModeratorAndAbove,
	)
	locations.Patch("/:id", moderatorOnly, locationCtrl.UpdateLocation)  // ✏️ update
	locations.Delete("/:id", moderatorOnly, locationCtrl.DeleteLocation) // 🗑️ delete (events keep running)
}
