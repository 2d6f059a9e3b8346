package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/db"
	"github.com/Enigmah-00/MindBridge-sub000/ml"
	"github.com/Enigmah-00/MindBridge-sub000/models"
	"github.com/Enigmah-00/MindBridge-sub000/utils"
)

// CreateCheckin records today's check-in for the caller and computes its
// risk score. One check-in per day; a second submission for the same date is
// rejected rather than overwritten.
func CreateCheckin(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	checkin := new(models.DailyCheckin)
	if err := c.BodyParser(checkin); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	checkin.UserID = userID
	checkin.Date = utils.DateOnly(time.Now())

	if checkin.Mood < 1 || checkin.Mood > 10 ||
		checkin.StressLevel < 1 || checkin.StressLevel > 10 ||
		checkin.Appetite < 1 || checkin.Appetite > 10 ||
		checkin.SocialContact < 1 || checkin.SocialContact > 10 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Mood, stress, appetite and social contact must be on a 1-10 scale",
		})
	}
	if checkin.SleepHours < 0 || checkin.SleepHours > 24 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Sleep hours must be between 0 and 24",
		})
	}

	checkin.RiskScore, checkin.RiskBand = ml.RiskScore(checkin)

	// The unique index on (user_id, date) is the arbiter; a racing second
	// submission surfaces here as a duplicate-key error, not as a fresh row.
	if err := db.DB.Create(checkin).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "You have already checked in today",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save check-in",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(checkin)
}

// GetCheckins lists the caller's check-in history, newest first.
func GetCheckins(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var checkins []models.DailyCheckin
	if err := db.DB.Where("user_id = ?", userID).
		Order("date desc").
		Find(&checkins).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch check-ins",
			Error:   err.Error(),
		})
	}
	return c.JSON(checkins)
}

// GetCheckinTrend averages the caller's risk score over the last seven days
// and returns it with its band.
func GetCheckinTrend(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	since := utils.DateOnly(time.Now().AddDate(0, 0, -7))

	var checkins []models.DailyCheckin
	if err := db.DB.Where("user_id = ? AND date >= ?", userID, since).
		Order("date").
		Find(&checkins).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch check-ins",
			Error:   err.Error(),
		})
	}

	if len(checkins) == 0 {
		return c.JSON(fiber.Map{
			"days":      0,
			"avg_risk":  0,
			"risk_band": models.RiskLow,
			"checkins":  checkins,
		})
	}

	var sum float64
	for i := range checkins {
		sum += checkins[i].RiskScore
	}
	avg := sum / float64(len(checkins))

	return c.JSON(fiber.Map{
		"days":      len(checkins),
		"avg_risk":  avg,
		"risk_band": ml.BandFor(avg),
		"checkins":  checkins,
	})
}
