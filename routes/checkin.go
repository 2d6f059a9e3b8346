package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/controllers"
	"github.com/Enigmah-00/MindBridge-sub000/middleware"
)

// SetupCheckinRoutes configures the daily check-in routes
func SetupCheckinRoutes(app *fiber.App) {
	checkin := app.Group("/checkins", middleware.Protected())
	checkin.Post("/", controllers.CreateCheckin)
	checkin.Get("/", controllers.GetCheckins)
	checkin.Get("/trend", controllers.GetCheckinTrend)
}
