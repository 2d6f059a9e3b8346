package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "BOOKED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment is one claimed slot of a doctor's day. Date carries no time
// component; StartMinute locates the slot within the day. SerialNumber is the
// booking order for that doctor and date, assigned starting at 1 and never
// reused, so cancellations leave gaps rather than renumbering.
// Appointments are never deleted: cancel and complete are status transitions.
type Appointment struct {
	gorm.Model
	DoctorID     uint              `json:"doctor_id" gorm:"index:idx_doctor_date"`
	Doctor       User              `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	PatientID    uint              `json:"patient_id" gorm:"index"`
	Patient      User              `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Date         time.Time         `json:"date" gorm:"type:date;index:idx_doctor_date"`
	StartMinute  int               `json:"start_minute"`
	SlotMinutes  int               `json:"slot_minutes"`
	SerialNumber uint              `json:"serial_number"`
	Status       AppointmentStatus `json:"status"`
	MeetingCode  string            `json:"meeting_code"`
	Rating       *int              `json:"rating,omitempty"`
	Review       string            `json:"review"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusBooked
	}
	return nil
}

// EndMinute is the slot's exclusive upper bound in minutes since midnight.
func (a *Appointment) EndMinute() int {
	return a.StartMinute + a.SlotMinutes
}

// Occupies reports whether the appointment still claims its slot.
// Cancelled appointments free the slot back up.
func (a *Appointment) Occupies() bool {
	return a.Status == StatusBooked || a.Status == StatusCompleted
}

// UpdateStatus applies a status transition and persists it. Only
// BOOKED -> COMPLETED and BOOKED -> CANCELLED are permitted; both are terminal.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusBooked:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	default:
		return fmt.Errorf("unknown appointment status %q", a.Status)
	}

	a.Status = newStatus
	return tx.Save(a).Error
}
