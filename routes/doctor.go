package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/controllers"
	"github.com/Enigmah-00/MindBridge-sub000/middleware"
)

// SetupDoctorRoutes configures doctor profile, matching and availability
// management routes. The self-service group registers first so "me" is never
// swallowed by the :id parameter.
func SetupDoctorRoutes(app *fiber.App) {
	me := app.Group("/doctors/me", middleware.Protected(), middleware.RequireRole("doctor"))
	me.Patch("/profile", controllers.UpdateDoctorProfile)
	me.Post("/profile/picture", controllers.UploadProfilePicture)
	me.Post("/availability", controllers.CreateAvailability)
	me.Patch("/availability/:id", controllers.UpdateAvailability)
	me.Delete("/availability/:id", controllers.DeleteAvailability)

	doctor := app.Group("/doctors")
	doctor.Get("/", controllers.GetAllDoctors)
	doctor.Post("/match", middleware.Protected(), controllers.MatchDoctors)
	doctor.Get("/:id", controllers.GetDoctor)
	doctor.Get("/:id/availability", controllers.GetDoctorAvailability)
}
