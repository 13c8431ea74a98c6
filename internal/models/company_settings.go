package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultCompanyName = "AMG Rénovation"

// CompanySettings is a single-row table.
type CompanySettings struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CompanyName string `gorm:"size:200" json:"company_name"`
	Email       string `gorm:"size:150" json:"email"`
	Phone       string `gorm:"size:30" json:"phone"`
	Address     string `gorm:"size:255" json:"address"`
	Siret       string `gorm:"size:20" json:"siret"`
	TVANumber   string `gorm:"size:30" json:"tva_number"`

	N8NConfig datatypes.JSONMap `gorm:"column:n8n_config" json:"n8n_config"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *CompanySettings) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// DisplayName falls back to the default trading name.
func (s *CompanySettings) DisplayName() string {
	if s == nil || s.CompanyName == "" {
		return DefaultCompanyName
	}
	return s.CompanyName
}

func (s *CompanySettings) WebhookPaths() map[string]string {
	if s == nil {
		return nil
	}
	return stringMap(s.N8NConfig)
}
