package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Enigmah-00/MindBridge-sub000/db"
	"github.com/Enigmah-00/MindBridge-sub000/models"
	"github.com/Enigmah-00/MindBridge-sub000/redis"
	"github.com/Enigmah-00/MindBridge-sub000/scheduler"
	"github.com/Enigmah-00/MindBridge-sub000/utils"
)

// GetAvailableSlots returns the free slots for a doctor on a date. The list
// is cached in Redis for a few seconds; booking re-validates inside its own
// transaction, so a slightly stale list is harmless.
func GetAvailableSlots(c *fiber.Ctx) error {
	doctorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor ID",
		})
	}

	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}
	dateKey := utils.FormatDate(date)

	if cached := redis.GetCachedSlots(uint(doctorID), dateKey); cached != "" {
		c.Set("Content-Type", "application/json")
		return c.SendString(cached)
	}

	slots, err := scheduler.New(db.DB).AvailableSlots(uint(doctorID), date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute available slots",
			Error:   err.Error(),
		})
	}

	if payload, err := json.Marshal(slots); err == nil {
		redis.CacheSlots(uint(doctorID), dateKey, payload)
	}
	return c.JSON(slots)
}

// BookAppointment claims a slot for the calling patient. A conflict means
// another patient got the slot first; the client should reload the slot list
// and pick again.
func BookAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type BookingInput struct {
		DoctorID    uint   `json:"doctor_id"`
		Date        string `json:"date"`
		StartMinute int    `json:"start_minute"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}
	if utils.DateOnly(date).Before(utils.DateOnly(time.Now())) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot book an appointment in the past",
		})
	}

	appointment, err := scheduler.New(db.DB).Book(input.DoctorID, userID, date, input.StartMinute)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrSlotTaken):
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "This slot was just taken. Please refresh the slot list and pick another.",
			})
		case errors.Is(err, scheduler.ErrSlotNotOffered):
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "The doctor does not offer this slot on the selected date",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to book appointment",
				Error:   err.Error(),
			})
		}
	}

	redis.InvalidateSlots(input.DoctorID, utils.FormatDate(date))

	// Best effort: the booking stands even if the mail bounces
	if err := sendBookingConfirmation(appointment); err != nil {
		log.Printf("Failed to send booking confirmation for appointment %d: %v", appointment.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func sendBookingConfirmation(appointment *models.Appointment) error {
	var patient, doctor models.User
	if err := db.DB.First(&patient, appointment.PatientID).Error; err != nil {
		return err
	}
	if err := db.DB.First(&doctor, appointment.DoctorID).Error; err != nil {
		return err
	}
	subject := fmt.Sprintf("Booking confirmed: Dr. %s on %s",
		doctor.Name, utils.FormatDate(appointment.Date))
	return utils.SendEmail(patient.Email, subject,
		bookingConfirmationBody(patient.Name, doctor.Name, appointment))
}

func bookingConfirmationBody(patientName, doctorName string, appointment *models.Appointment) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment is confirmed.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Booking number:</strong> %d</li>
			<li><strong>Meeting code:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so as early as possible so the slot can be offered to someone else.</p>
		<p>Best regards,</p>
		<p>The MindBridge Team</p>
	`, patientName, doctorName,
		utils.FormatDate(appointment.Date),
		utils.MinuteToClock(appointment.StartMinute),
		appointment.SerialNumber,
		appointment.MeetingCode)
}

// GetMyAppointments lists the caller's appointments, as patient or doctor
// depending on their role.
func GetMyAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)

	query := db.DB.Preload("Doctor").Preload("Patient").Order("date desc, start_minute")
	if role == string(models.RoleDoctor) {
		query = query.Where("doctor_id = ?", userID)
	} else {
		query = query.Where("patient_id = ?", userID)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// CancelAppointment transitions a BOOKED appointment to CANCELLED. Only the
// booking patient may cancel, and serial numbers of other appointments are
// untouched.
func CancelAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	if appointment.PatientID != userID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Only the booking patient may cancel this appointment",
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCancelled); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Cannot cancel this appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateSlots(appointment.DoctorID, utils.FormatDate(appointment.Date))
	return c.JSON(appointment)
}

// CompleteAppointment transitions a BOOKED appointment to COMPLETED. Only
// the appointment's doctor may do this by hand; the cron sweep handles the
// rest after the date passes.
func CompleteAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	if appointment.DoctorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Only the appointment's doctor may mark it completed",
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCompleted); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Cannot complete this appointment",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// ReviewAppointment records a rating and free-text review on a completed
// appointment and refreshes the doctor's denormalized average.
func ReviewAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	type ReviewInput struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}

	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Rating must be between 1 and 5",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	if appointment.PatientID != userID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Only the booking patient may review this appointment",
		})
	}
	if appointment.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Only completed appointments can be reviewed",
		})
	}

	appointment.Rating = &input.Rating
	appointment.Review = input.Review
	if err := db.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save review",
			Error:   err.Error(),
		})
	}

	if err := refreshDoctorRating(appointment.DoctorID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update doctor rating",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// refreshDoctorRating recomputes the denormalized average rating on the
// doctor profile from all rated appointments.
func refreshDoctorRating(doctorID uint) error {
	type ratingAgg struct {
		Avg   float64
		Count int64
	}
	var agg ratingAgg
	err := db.DB.Model(&models.Appointment{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(rating) as count").
		Where("doctor_id = ? AND rating IS NOT NULL", doctorID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return db.DB.Model(&models.DoctorProfile{}).
		Where("user_id = ?", doctorID).
		Updates(map[string]interface{}{
			"avg_rating":   agg.Avg,
			"rating_count": agg.Count,
		}).Error
}
