package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AIRendering struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID          *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	OriginalImageURL  string     `gorm:"size:500" json:"original_image_url"`
	GeneratedImageURL string     `gorm:"size:500" json:"generated_image_url"`
	Prompt            string     `gorm:"type:text" json:"prompt"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (AIRendering) TableName() string {
	return "ai_renderings"
}

func (r *AIRendering) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
