package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/db"
	"github.com/Enigmah-00/MindBridge-sub000/models"
)

// GetDoctorAvailability lists a doctor's weekly availability rules. Public,
// so patients can see the general shape of a doctor's week.
func GetDoctorAvailability(c *fiber.Ctx) error {
	doctorID := c.Params("id")
	var rules []models.WeeklyAvailability
	if err := db.DB.Where("doctor_id = ?", doctorID).
		Order("day_of_week, start_minute").Find(&rules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get availability",
		})
	}
	return c.JSON(rules)
}

// CreateAvailability adds a weekly rule to the calling doctor's schedule.
func CreateAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	rule := new(models.WeeklyAvailability)
	if err := c.BodyParser(rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	rule.DoctorID = userID

	if err := rule.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err := db.DB.Create(rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create availability rule",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}

// UpdateAvailability edits one of the calling doctor's rules.
func UpdateAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var rule models.WeeklyAvailability
	if err := db.DB.Where("id = ? AND doctor_id = ?", id, userID).First(&rule).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability rule not found",
		})
	}
	if err := c.BodyParser(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	rule.DoctorID = userID

	if err := rule.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err := db.DB.Save(&rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update availability rule",
		})
	}
	return c.JSON(rule)
}

// DeleteAvailability removes one of the calling doctor's rules. Existing
// appointments are untouched; the rule only stops producing future slots.
func DeleteAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var rule models.WeeklyAvailability
	if err := db.DB.Where("id = ? AND doctor_id = ?", id, userID).First(&rule).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability rule not found",
		})
	}
	if err := db.DB.Delete(&rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete availability rule",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
