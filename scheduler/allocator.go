package scheduler

import (
	"time"

	"github.com/Enigmah-00/MindBridge-sub000/models"
	"github.com/Enigmah-00/MindBridge-sub000/utils"
)

// FreeSlots filters candidate slots down to those not claimed by a BOOKED or
// COMPLETED appointment at the same start minute. Cancelled appointments do
// not occupy their slot. Candidate order is preserved. Past dates are not
// rejected here; that policy belongs to the booking entry point.
func FreeSlots(candidates []Slot, appointments []models.Appointment) []Slot {
	occupied := make(map[int]bool, len(appointments))
	for i := range appointments {
		if appointments[i].Occupies() {
			occupied[appointments[i].StartMinute] = true
		}
	}

	free := make([]Slot, 0, len(candidates))
	for _, slot := range candidates {
		if !occupied[slot.StartMinute] {
			free = append(free, slot)
		}
	}
	return free
}

// AvailableSlots returns the bookable slots for a doctor on a calendar date:
// the weekly rules expanded for that date, minus already-claimed slots.
// An unknown doctor or a weekday with no rule yields an empty list, not an
// error — absence of availability is an expected outcome.
func (s *Service) AvailableSlots(doctorID uint, date time.Time) ([]Slot, error) {
	day := utils.DateOnly(date)

	var rules []models.WeeklyAvailability
	if err := s.db.Where("doctor_id = ?", doctorID).Find(&rules).Error; err != nil {
		return nil, err
	}

	candidates := ExpandRules(rules, day)
	if len(candidates) == 0 {
		return []Slot{}, nil
	}

	var appointments []models.Appointment
	if err := s.db.Where("doctor_id = ? AND date = ?", doctorID, day).
		Find(&appointments).Error; err != nil {
		return nil, err
	}

	return FreeSlots(candidates, appointments), nil
}
