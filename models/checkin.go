package models

import (
	"time"

	"gorm.io/gorm"
)

type RiskBand string

const (
	RiskLow      RiskBand = "LOW"
	RiskModerate RiskBand = "MODERATE"
	RiskHigh     RiskBand = "HIGH"
)

// DailyCheckin is one day's self-reported wellbeing entry. Mood, StressLevel,
// Appetite and SocialContact are 1-10 scales. RiskScore and RiskBand are
// computed by ml.RiskScore at write time, one entry per user per day.
type DailyCheckin struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"index:idx_user_checkin_date,unique"`
	User          User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Date          time.Time `json:"date" gorm:"type:date;index:idx_user_checkin_date,unique"`
	Mood          int       `json:"mood"`
	SleepHours    float64   `json:"sleep_hours"`
	StressLevel   int       `json:"stress_level"`
	Appetite      int       `json:"appetite"`
	SocialContact int       `json:"social_contact"`
	Notes         string    `json:"notes"`
	RiskScore     float64   `json:"risk_score"`
	RiskBand      RiskBand  `json:"risk_band"`
}
