package models

import (
	"testing"
)

func TestWeeklyAvailabilityValidate(t *testing.T) {
	valid := WeeklyAvailability{
		DoctorID:    1,
		DayOfWeek:   Monday,
		StartMinute: 540,
		EndMinute:   720,
		SlotMinutes: 30,
		Timezone:    "Asia/Dhaka",
	}

	tests := []struct {
		name    string
		mutate  func(*WeeklyAvailability)
		wantErr bool
	}{
		{"valid rule", func(w *WeeklyAvailability) {}, false},
		{"empty timezone falls back to UTC", func(w *WeeklyAvailability) { w.Timezone = "" }, false},
		{"start after end", func(w *WeeklyAvailability) { w.StartMinute, w.EndMinute = 720, 540 }, true},
		{"start equals end", func(w *WeeklyAvailability) { w.EndMinute = w.StartMinute }, true},
		{"zero slot length", func(w *WeeklyAvailability) { w.SlotMinutes = 0 }, true},
		{"negative slot length", func(w *WeeklyAvailability) { w.SlotMinutes = -30 }, true},
		{"weekday out of range", func(w *WeeklyAvailability) { w.DayOfWeek = 7 }, true},
		{"negative start", func(w *WeeklyAvailability) { w.StartMinute = -10 }, true},
		{"end past midnight", func(w *WeeklyAvailability) { w.EndMinute = 24*60 + 1 }, true},
		{"bogus timezone", func(w *WeeklyAvailability) { w.Timezone = "Mars/Olympus" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := valid
			tt.mutate(&rule)
			err := rule.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestQuizBand(t *testing.T) {
	// PHQ-9 style thresholds.
	quiz := Quiz{MinimalMax: 4, MildMax: 9, ModerateMax: 14}

	tests := []struct {
		total int
		want  Severity
	}{
		{0, SeverityMinimal},
		{4, SeverityMinimal},
		{5, SeverityMild},
		{9, SeverityMild},
		{10, SeverityModerate},
		{14, SeverityModerate},
		{15, SeveritySevere},
		{27, SeveritySevere},
	}
	for _, tt := range tests {
		if got := quiz.Band(tt.total); got != tt.want {
			t.Fatalf("Band(%d) = %s, want %s", tt.total, got, tt.want)
		}
	}
}
