package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrAlreadyVerified is returned when a verified account submits another OTP.
var ErrAlreadyVerified = errors.New("account already verified")

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleDoctor UserRole = "doctor"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name"`
	Email        string         `json:"email" gorm:"unique"`
	Password     string         `json:"password,omitempty"`
	Role         UserRole       `json:"role" gorm:"default:user"`
	Gender       string         `json:"gender"`
	DateOfBirth  *time.Time     `json:"date_of_birth,omitempty"`
	IsVerified   bool           `json:"is_verified"`
	OTP          string         `json:"otp,omitempty"`
	OTPExpiresAt time.Time      `json:"otp_expires_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	DoctorProfile *DoctorProfile       `json:"doctor_profile,omitempty" gorm:"foreignKey:UserID"`
	Availability  []WeeklyAvailability `json:"availability,omitempty" gorm:"foreignKey:DoctorID"`
	Checkins      []DailyCheckin       `json:"checkins,omitempty" gorm:"foreignKey:UserID"`
}

// IsDoctor reports whether the account belongs to a doctor.
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

// ConfirmOTP checks the code against the stored OTP and, on success, marks
// the account verified and clears the code so it cannot be replayed.
func (u *User) ConfirmOTP(code string, now time.Time) error {
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	if u.OTP == "" || code != u.OTP {
		return errors.New("incorrect verification code")
	}
	if now.After(u.OTPExpiresAt) {
		return errors.New("verification code expired")
	}
	u.IsVerified = true
	u.OTP = ""
	return nil
}
