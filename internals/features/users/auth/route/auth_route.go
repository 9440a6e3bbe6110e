package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "eventorganizer_backend/internals/features/users/auth/controller"
	middlewares "eventorganizer_backend/internals/middlewares"
	authMiddleware "eventorganizer_backend/internals/middlewares/auth"
)

func AuthRoutes(router fiber.Router, db *gorm.DB) {
	authCtrl := authController.NewAuthController(db)

	auth := router.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), authCtrl.Register) // ➕ sign up
	auth.Post("/login", middlewares.LoginRateLimiter(), authCtrl.Login)          // 🔑 sign in
	auth.Get("/me", authMiddleware.AuthMiddleware(db), authCtrl.Me)              // 👤 current role
}
