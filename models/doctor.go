package models

import (
	"gorm.io/gorm"
)

// DoctorProfile holds the public-facing details of a doctor account.
// FeeCents and AvgRating feed the matching heuristic in the ml package.
type DoctorProfile struct {
	gorm.Model
	UserID          uint    `json:"user_id" gorm:"uniqueIndex"`
	User            User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Specialization  string  `json:"specialization"`
	Bio             string  `json:"bio"`
	FeeCents        int64   `json:"fee_cents"`
	YearsExperience int     `json:"years_experience"`
	Timezone        string  `json:"timezone" gorm:"default:UTC"`
	Languages       string  `json:"languages"` // comma separated
	ProfilePicture  string  `json:"profile_picture"`
	AvgRating       float64 `json:"avg_rating" gorm:"type:decimal(2,1);default:0"`
	RatingCount     int64   `json:"rating_count" gorm:"default:0"`
}
