package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/controllers"
	"github.com/Enigmah-00/MindBridge-sub000/middleware"
)

// SetupDashboardRoutes configures the dashboard routes
func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/dashboard", middleware.Protected())
	dashboard.Get("/", controllers.GetDashboardOverview)
	dashboard.Get("/recent", controllers.GetRecentAppointments)
}
