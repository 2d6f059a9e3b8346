package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/controllers"
	"github.com/Enigmah-00/MindBridge-sub000/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Get("/doctors/:id/slots", controllers.GetAvailableSlots)
	appointment.Get("/", middleware.Protected(), controllers.GetMyAppointments)
	appointment.Post("/", middleware.Protected(), middleware.RequireRole("user"), controllers.BookAppointment)
	appointment.Post("/:id/cancel", middleware.Protected(), middleware.RequireRole("user"), controllers.CancelAppointment)
	appointment.Post("/:id/complete", middleware.Protected(), middleware.RequireRole("doctor"), controllers.CompleteAppointment)
	appointment.Post("/:id/review", middleware.Protected(), middleware.RequireRole("user"), controllers.ReviewAppointment)
}
