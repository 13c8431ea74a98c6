package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllovoisinLead is a marketplace request scraped by the workflow platform.
type AllovoisinLead struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmailDate         *time.Time `json:"email_date"`
	ClientName        string     `gorm:"size:200" json:"client_name"`
	ProjectType       string     `gorm:"size:200" json:"project_type"`
	City              string     `gorm:"size:120" json:"city"`
	PostalCode        string     `gorm:"size:10" json:"postal_code"`
	DistanceKm        *float64   `json:"distance_km"`
	EstimatedPriceMin *float64   `json:"estimated_price_min"`
	EstimatedPriceMax *float64   `json:"estimated_price_max"`
	OriginalLink      string     `gorm:"size:500" json:"original_link"`
	Status            string     `gorm:"size:20;default:'pending'" json:"status"`
	Notes             string     `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (l *AllovoisinLead) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ID)
	return nil
}
