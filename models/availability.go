package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeeklyAvailability is a recurring rule describing one bookable window of a
// doctor's week. Offsets are minutes since midnight in the rule's timezone.
// Rules are managed through the doctor profile flow and are read-only to the
// booking code.
type WeeklyAvailability struct {
	gorm.Model
	DoctorID    uint      `json:"doctor_id" gorm:"index"`
	Doctor      User      `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	DayOfWeek   DayOfWeek `json:"day_of_week"`
	StartMinute int       `json:"start_minute"`
	EndMinute   int       `json:"end_minute"`
	SlotMinutes int       `json:"slot_minutes"`
	Timezone    string    `json:"timezone" gorm:"default:UTC"`
}

// Validate checks the rule invariants before it is written.
func (w *WeeklyAvailability) Validate() error {
	if w.DayOfWeek < Sunday || w.DayOfWeek > Saturday {
		return fmt.Errorf("day_of_week must be 0 (Sunday) through 6 (Saturday), got %d", w.DayOfWeek)
	}
	if w.StartMinute < 0 || w.EndMinute > 24*60 {
		return fmt.Errorf("window must fall within a single day")
	}
	if w.StartMinute >= w.EndMinute {
		return fmt.Errorf("start_minute %d must be before end_minute %d", w.StartMinute, w.EndMinute)
	}
	if w.SlotMinutes <= 0 {
		return fmt.Errorf("slot_minutes must be positive, got %d", w.SlotMinutes)
	}
	if w.Timezone != "" {
		if _, err := time.LoadLocation(w.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q", w.Timezone)
		}
	}
	return nil
}

func (w *WeeklyAvailability) BeforeCreate(tx *gorm.DB) error {
	return w.Validate()
}

func (w *WeeklyAvailability) BeforeUpdate(tx *gorm.DB) error {
	return w.Validate()
}
