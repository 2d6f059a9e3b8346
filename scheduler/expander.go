package scheduler

import (
	"sort"
	"time"

	"github.com/Enigmah-00/MindBridge-sub000/models"
)

// ExpandRules generates every candidate slot the given weekly rules imply for
// one calendar date, sorted by start minute. A rule contributes slots only
// when the date's weekday matches. Slots step from
// the window start by the slot length; a trailing window remainder shorter
// than one slot is discarded. Overlapping rules for the same weekday all
// emit their slots — duplicates are a data-entry problem for the
// availability-management flow, not silently repaired here.
func ExpandRules(rules []models.WeeklyAvailability, date time.Time) []Slot {
	var slots []Slot
	for _, rule := range rules {
		if !appliesOn(&rule, date) {
			continue
		}
		for s := rule.StartMinute; s+rule.SlotMinutes <= rule.EndMinute; s += rule.SlotMinutes {
			slots = append(slots, Slot{
				StartMinute: s,
				EndMinute:   s + rule.SlotMinutes,
				SlotMinutes: rule.SlotMinutes,
			})
		}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartMinute < slots[j].StartMinute
	})
	return slots
}

// appliesOn reports whether the rule's weekday matches the calendar date.
// Dates arrive as plain calendar days already local to the doctor, so the
// weekday is read straight off the date; the rule's timezone only matters
// when a caller resolves "today" into a date.
func appliesOn(rule *models.WeeklyAvailability, date time.Time) bool {
	return int(rule.DayOfWeek) == int(date.Weekday())
}
