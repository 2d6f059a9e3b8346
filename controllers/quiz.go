package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/db"
	"github.com/Enigmah-00/MindBridge-sub000/models"
	"github.com/Enigmah-00/MindBridge-sub000/utils"
)

// GetAllQuizzes lists the available self-assessment quizzes without their
// questions.
func GetAllQuizzes(c *fiber.Ctx) error {
	var quizzes []models.Quiz
	if err := db.DB.Find(&quizzes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch quizzes",
			Error:   err.Error(),
		})
	}
	return c.JSON(quizzes)
}

// GetQuiz returns one quiz with questions and options, by slug.
func GetQuiz(c *fiber.Ctx) error {
	slug := c.Params("slug")
	var quiz models.Quiz
	if err := db.DB.Preload("Questions.Options").
		Where("slug = ?", slug).First(&quiz).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Quiz not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(quiz)
}

// SubmitQuiz scores a set of selected options against a quiz and stores the
// result with its severity band. Every question must be answered with one of
// its own options.
func SubmitQuiz(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	slug := c.Params("slug")

	type SubmitInput struct {
		OptionIDs []uint `json:"option_ids"`
	}

	input := new(SubmitInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var quiz models.Quiz
	if err := db.DB.Preload("Questions.Options").
		Where("slug = ?", slug).First(&quiz).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Quiz not found",
			Error:   err.Error(),
		})
	}

	// Index every option of the quiz by ID, remembering its question so a
	// submission cannot answer the same question twice.
	optionScore := make(map[uint]int)
	optionQuestion := make(map[uint]uint)
	for _, question := range quiz.Questions {
		for _, option := range question.Options {
			optionScore[option.ID] = option.Score
			optionQuestion[option.ID] = question.ID
		}
	}

	answered := make(map[uint]bool)
	total := 0
	for _, optionID := range input.OptionIDs {
		questionID, ok := optionQuestion[optionID]
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Submission contains an option that does not belong to this quiz",
			})
		}
		if answered[questionID] {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Each question may only be answered once",
			})
		}
		answered[questionID] = true
		total += optionScore[optionID]
	}
	if len(answered) != len(quiz.Questions) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "All questions must be answered",
		})
	}

	result := models.QuizResult{
		UserID:   userID,
		QuizID:   quiz.ID,
		Total:    total,
		Severity: quiz.Band(total),
	}
	if err := db.DB.Create(&result).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save quiz result",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetQuizResults lists the caller's past results, newest first.
func GetQuizResults(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var results []models.QuizResult
	if err := db.DB.Preload("Quiz").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch quiz results",
			Error:   err.Error(),
		})
	}
	return c.JSON(results)
}
