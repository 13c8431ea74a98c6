package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is linked to clients only through the free-text ClientName.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientName      string     `gorm:"size:200;not null" json:"client_name"`
	PhoneNumber     string     `gorm:"size:30" json:"phone_number"`
	AppointmentDate *time.Time `gorm:"index" json:"appointment_date"`
	AppointmentType string     `gorm:"size:100" json:"appointment_type"`
	Status          string     `gorm:"size:20;default:'pending'" json:"status"`
	Notes           string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
