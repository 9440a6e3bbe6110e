package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	categoryRoute "eventorganizer_backend/internals/features/events/category/route"
	eventRoute "eventorganizer_backend/internals/features/events/event/route"
	locationRoute "eventorganizer_backend/internals/features/events/location/route"
	requestRoute "eventorganizer_backend/internals/features/events/moderation/route"
	authRoute "eventorganizer_backend/internals/features/users/auth/route"
	userRoute "eventorganizer_backend/internals/features/users/user/route"
)

// SetupRoutes mounts every feature group under /api.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	log.Println("[INFO] 🔑 mounting auth routes")
	authRoute.AuthRoutes(api, db)

	log.Println("[INFO] 🌍 mounting public event routes")
	eventRoute.EventPublicRoutes(api, db)

	log.Println("[INFO] 🎫 mounting event routes")
	eventRoute.EventRoutes(api, db)

	log.Println("[INFO] 🏷️ mounting category routes")
	categoryRoute.CategoryRoutes(api, db)

	log.Println("[INFO] 📍 mounting location routes")
	locationRoute.LocationRoutes(api, db)

	log.Println("[INFO] 📝 mounting moderation routes")
	requestRoute.RequestRoutes(api, db)

	log.Println("[INFO] 🛡️ mounting user admin routes")
	userRoute.UserAdminRoutes(api, db)
}
