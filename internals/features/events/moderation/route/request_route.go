package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/constants"
	requestController "eventorganizer_backend/internals/features/events/moderation/controller"
	authMiddleware "eventorganizer_backend/internals/middlewares/auth"
)

// 📝 Moderation queue. Submitting and reading requires auth; deciding a
// request additionally requires moderator or admin.
func RequestRoutes(router fiber.Router, db *gorm.DB) {
	requestCtrl := requestController.NewRequestController(db)

	requests := router.Group("/requests", authMiddleware.AuthMiddleware(db))

	requests.Post("/", requestCtrl.CreateRequest)    // ➕ file a proposal
	requests.Get("/", requestCtrl.GetAllRequests)    // 📄 queue (scoped by role)
	requests.Get("/:id", requestCtrl.GetRequestByID) // 🔍 request detail

	requests.Patch("/:id",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorModerator("request review"),
			constants.ModeratorAndAbove,
		),
		requestCtrl.ReviewRequest, // ✅ approve / ❌ reject
	)
}
