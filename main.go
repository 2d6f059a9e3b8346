package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Enigmah-00/MindBridge-sub000/cron"
	"github.com/Enigmah-00/MindBridge-sub000/db"
	"github.com/Enigmah-00/MindBridge-sub000/redis"
	"github.com/Enigmah-00/MindBridge-sub000/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("MindBridge API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupQuizRoutes(app)
	routes.SetupCheckinRoutes(app)
	routes.SetupMessageRoutes(app)
	routes.SetupDashboardRoutes(app)

	app.Listen(":8000")
	fmt.Println("Server started on port 8000")
}
