// Package scheduler turns a doctor's recurring weekly availability into
// concrete bookable slots and claims them without double-booking.
package scheduler

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrSlotTaken means a non-cancelled appointment already holds the
	// requested slot. The client should refresh its slot list and retry
	// with another slot.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrSlotNotOffered means the requested start minute does not match any
	// slot the doctor's weekly rules produce for that date.
	ErrSlotNotOffered = errors.New("slot is not offered on this date")
)

// Slot is one bookable window of a doctor's day, expressed as minute offsets
// since midnight. Slots are derived from weekly rules and never persisted.
type Slot struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
	SlotMinutes int `json:"slot_minutes"`
}

// Service exposes the slot listing and booking operations on top of a
// database connection. It holds no state between requests; the database's
// transaction primitives are the only coordination used.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}
