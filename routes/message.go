package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/controllers"
	"github.com/Enigmah-00/MindBridge-sub000/middleware"
)

// SetupMessageRoutes configures the messaging routes
func SetupMessageRoutes(app *fiber.App) {
	message := app.Group("/messages", middleware.Protected())
	message.Post("/", controllers.SendMessage)
	message.Get("/unread", controllers.GetUnreadCount)
	message.Get("/with/:id", controllers.GetConversation)
}
