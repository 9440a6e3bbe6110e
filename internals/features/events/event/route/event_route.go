package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventController "eventorganizer_backend/internals/features/events/event/controller"
	authMiddleware "eventorganizer_backend/internals/middlewares/auth"
)

// 🌍 No auth: the public event listing.
func EventPublicRoutes(router fiber.Router, db *gorm.DB) {
	eventCtrl := eventController.NewEventController(db)

	router.Get("/public-events", eventCtrl.GetPublicEvents) // 📄 public listing
}

// 🎫 Auth required. Writes dispatch on role: moderator/admin apply
// directly, the user role files a moderation request.
func EventRoutes(router fiber.Router, db *gorm.DB) {
	eventCtrl := eventController.NewEventController(db)

	events := router.Group("/events", authMiddleware.AuthMiddleware(db))

	events.Get("/", eventCtrl.GetAllEvents)       // 📄 list events
	events.Get("/:id", eventCtrl.GetEventByID)    // 🔍 event detail
	events.Post("/", eventCtrl.CreateEvent)       // ➕ create (or propose)
	events.Patch("/:id", eventCtrl.UpdateEvent)   // ✏️ update (or propose)
	events.Delete("/:id", eventCtrl.DeleteEvent)  // 🗑️ delete (or propose)
}
