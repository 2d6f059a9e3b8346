package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Enigmah-00/MindBridge-sub000/db"
	"github.com/Enigmah-00/MindBridge-sub000/models"
	"github.com/Enigmah-00/MindBridge-sub000/utils"
)

type dashboardStatistics struct {
	TotalAppointments int64     `json:"total_appointments"`
	BookedCount       int64     `json:"booked_count"`
	CompletedCount    int64     `json:"completed_count"`
	CancelledCount    int64     `json:"cancelled_count"`
	UpcomingCount     int64     `json:"upcoming_count"`
	LastUpdated       time.Time `json:"last_updated"`
}

// collectDashboardStatistics counts the caller's appointments by status.
// Every count starts from a fresh chain: reusing one chained query makes
// GORM accumulate the status conditions across calls, zeroing all but the
// first count.
func collectDashboardStatistics(gdb *gorm.DB, userID uint, role string) dashboardStatistics {
	base := func() *gorm.DB {
		query := gdb.Model(&models.Appointment{})
		if role == string(models.RoleDoctor) {
			return query.Where("doctor_id = ?", userID)
		}
		return query.Where("patient_id = ?", userID)
	}

	var statistics dashboardStatistics
	base().Count(&statistics.TotalAppointments)
	base().Where("status = ?", models.StatusBooked).Count(&statistics.BookedCount)
	base().Where("status = ?", models.StatusCompleted).Count(&statistics.CompletedCount)
	base().Where("status = ?", models.StatusCancelled).Count(&statistics.CancelledCount)

	today := utils.DateOnly(time.Now())
	base().Where("status = ? AND date >= ?", models.StatusBooked, today).
		Count(&statistics.UpcomingCount)

	statistics.LastUpdated = time.Now()
	return statistics
}

// GetDashboardOverview returns role-aware summary numbers: appointment
// counts by status and upcoming visits for everyone, average rating for
// doctors, latest check-in risk band for patients.
func GetDashboardOverview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}
	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User role not found in context",
		})
	}

	response := fiber.Map{"statistics": collectDashboardStatistics(db.DB, userID, role)}

	if role == string(models.RoleDoctor) {
		var profile models.DoctorProfile
		if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			response["avg_rating"] = profile.AvgRating
			response["rating_count"] = profile.RatingCount
		}
	} else {
		var latest models.DailyCheckin
		if err := db.DB.Where("user_id = ?", userID).
			Order("date desc").First(&latest).Error; err == nil {
			response["latest_risk_score"] = latest.RiskScore
			response["latest_risk_band"] = latest.RiskBand
		}
	}

	return c.JSON(response)
}

// GetRecentAppointments returns the caller's five most recent appointments.
func GetRecentAppointments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}
	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User role not found in context",
		})
	}

	query := db.DB.Preload("Doctor").Preload("Patient").
		Order("date desc, start_minute desc").Limit(5)
	if role == string(models.RoleDoctor) {
		query = query.Where("doctor_id = ?", userID)
	} else {
		query = query.Where("patient_id = ?", userID)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch recent appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}
