package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/controllers"
	"github.com/Enigmah-00/MindBridge-sub000/middleware"
)

// SetupAuthRoutes configures all auth related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/register", controllers.Register)
	auth.Post("/verify", controllers.VerifyEmail)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Get("/profile", middleware.Protected(), controllers.GetUserProfile)
}
