package models

import (
	"gorm.io/gorm"
)

type Severity string

const (
	SeverityMinimal  Severity = "minimal"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Quiz is a self-assessment questionnaire (e.g. PHQ-9, GAD-7). The three
// threshold fields split total scores into four severity bands.
type Quiz struct {
	gorm.Model
	Title       string         `json:"title"`
	Slug        string         `json:"slug" gorm:"uniqueIndex"`
	Description string         `json:"description"`
	MinimalMax  int            `json:"minimal_max"`
	MildMax     int            `json:"mild_max"`
	ModerateMax int            `json:"moderate_max"`
	Questions   []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

// Band maps a total score onto the quiz's severity scale.
func (q *Quiz) Band(total int) Severity {
	switch {
	case total <= q.MinimalMax:
		return SeverityMinimal
	case total <= q.MildMax:
		return SeverityMild
	case total <= q.ModerateMax:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

type QuizQuestion struct {
	gorm.Model
	QuizID  uint         `json:"quiz_id" gorm:"index"`
	Order   int          `json:"order"`
	Text    string       `json:"text"`
	Options []QuizOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

type QuizOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index"`
	Text       string `json:"text"`
	Score      int    `json:"score"`
}

type QuizResult struct {
	gorm.Model
	UserID   uint     `json:"user_id" gorm:"index"`
	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	QuizID   uint     `json:"quiz_id" gorm:"index"`
	Quiz     Quiz     `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Total    int      `json:"total"`
	Severity Severity `json:"severity"`
}
