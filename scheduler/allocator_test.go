package scheduler

import (
	"testing"

	"github.com/Enigmah-00/MindBridge-sub000/models"
)

func appt(start int, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		DoctorID:    1,
		StartMinute: start,
		SlotMinutes: 30,
		Status:      status,
	}
}

func TestFreeSlots(t *testing.T) {
	candidates := []Slot{
		{StartMinute: 540, EndMinute: 570, SlotMinutes: 30},
		{StartMinute: 570, EndMinute: 600, SlotMinutes: 30},
		{StartMinute: 600, EndMinute: 630, SlotMinutes: 30},
		{StartMinute: 630, EndMinute: 660, SlotMinutes: 30},
	}

	tests := []struct {
		name         string
		appointments []models.Appointment
		wantStarts   []int
	}{
		{
			name:       "no appointments leaves all slots free",
			wantStarts: []int{540, 570, 600, 630},
		},
		{
			name: "booked and completed slots are removed",
			appointments: []models.Appointment{
				appt(540, models.StatusBooked),
				appt(600, models.StatusCompleted),
			},
			wantStarts: []int{570, 630},
		},
		{
			name: "cancelled appointments free their slot",
			appointments: []models.Appointment{
				appt(540, models.StatusCancelled),
				appt(570, models.StatusBooked),
			},
			wantStarts: []int{540, 600, 630},
		},
		{
			name: "fully booked day",
			appointments: []models.Appointment{
				appt(540, models.StatusBooked),
				appt(570, models.StatusBooked),
				appt(600, models.StatusBooked),
				appt(630, models.StatusBooked),
			},
			wantStarts: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free := FreeSlots(candidates, tt.appointments)
			if !equalInts(startMinutes(free), tt.wantStarts) {
				t.Fatalf("expected free starts %v, got %v", tt.wantStarts, startMinutes(free))
			}
		})
	}
}

func TestFreeSlots_SubsetOfCandidates(t *testing.T) {
	candidates := []Slot{
		{StartMinute: 540, EndMinute: 570, SlotMinutes: 30},
		{StartMinute: 570, EndMinute: 600, SlotMinutes: 30},
	}
	free := FreeSlots(candidates, []models.Appointment{appt(570, models.StatusBooked)})

	candidateSet := make(map[int]bool)
	for _, s := range candidates {
		candidateSet[s.StartMinute] = true
	}
	for _, s := range free {
		if !candidateSet[s.StartMinute] {
			t.Fatalf("free slot %+v is not among the candidates", s)
		}
	}
}
