package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Enigmah-00/MindBridge-sub000/db"
	"github.com/Enigmah-00/MindBridge-sub000/models"
	"github.com/Enigmah-00/MindBridge-sub000/utils"
)

// StartCronJobs wires the background jobs: hourly completion of appointments
// whose date has passed, and an evening reminder mail for tomorrow's visits.
func StartCronJobs() {
	c := cron.New()

	_, err := c.AddFunc("0 * * * *", completePastAppointments)
	if err != nil {
		log.Fatalf("Failed to add completion cron job: %v", err)
	}

	_, err = c.AddFunc("0 18 * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
}

// completePastAppointments moves BOOKED appointments whose date is behind us
// to COMPLETED through the status state machine, one row at a time so a bad
// row cannot wedge the whole sweep.
func completePastAppointments() {
	today := utils.DateOnly(time.Now())

	var appointments []models.Appointment
	err := db.DB.
		Where("status = ? AND date < ?", models.StatusBooked, today).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching past appointments: %v", err)
		return
	}

	for i := range appointments {
		if err := appointments[i].UpdateStatus(db.DB, models.StatusCompleted); err != nil {
			log.Printf("Failed to complete appointment %d: %v", appointments[i].ID, err)
		}
	}
}

// sendAppointmentReminders mails every patient with a BOOKED appointment
// tomorrow.
func sendAppointmentReminders() {
	tomorrow := utils.DateOnly(time.Now().AddDate(0, 0, 1))

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Doctor").
		Where("status = ? AND date = ?", models.StatusBooked, tomorrow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: Appointment with Dr. %s tomorrow", appointment.Doctor.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment tomorrow.</p>
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
	`, appointment.Patient.Name, appointment.Doctor.Name,
		utils.FormatDate(appointment.Date),
		utils.MinuteToClock(appointment.StartMinute),
		appointment.SerialNumber,
		appointment.MeetingCode)

	return utils.SendEmail(appointment.Patient.Email, subject, body)
}
