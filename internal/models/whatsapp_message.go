package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

type WhatsappMessage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PhoneNumber    string    `gorm:"size:30;index" json:"phone_number"`
	Sender         string    `gorm:"size:20;not null" json:"sender"`
	MessageContent string    `gorm:"type:text;not null" json:"message_content"`
	ReceivedAt     time.Time `gorm:"index" json:"received_at"`
	CreatedAt      time.Time `json:"created_at"`
}

func (m *WhatsappMessage) BeforeCreate(*gorm.DB) error {
	ensureID(&m.ID)
	if m.ReceivedAt.IsZero() {
		m.ReceivedAt = time.Now().UTC()
	}
	return nil
}
