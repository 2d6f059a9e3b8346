package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/controllers"
	"github.com/Enigmah-00/MindBridge-sub000/middleware"
)

// SetupQuizRoutes configures the self-assessment quiz routes
func SetupQuizRoutes(app *fiber.App) {
	quiz := app.Group("/quizzes")
	quiz.Get("/", controllers.GetAllQuizzes)
	quiz.Get("/results", middleware.Protected(), controllers.GetQuizResults)
	quiz.Get("/:slug", controllers.GetQuiz)
	quiz.Post("/:slug/submit", middleware.Protected(), controllers.SubmitQuiz)
}
