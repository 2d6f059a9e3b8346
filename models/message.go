package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	SenderID    uint       `json:"sender_id" gorm:"index"`
	Sender      User       `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	RecipientID uint       `json:"recipient_id" gorm:"index"`
	Recipient   User       `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	Body        string     `json:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}
