package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacebookPost struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Caption     string     `gorm:"type:text;not null" json:"caption"`
	ImageURL    string     `gorm:"size:500" json:"image_url"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      string     `gorm:"size:20;default:'published'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (p *FacebookPost) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

type FacebookProspect struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostTitle       string    `gorm:"size:255" json:"post_title"`
	PostDescription string    `gorm:"type:text" json:"post_description"`
	AuthorName      string    `gorm:"size:150" json:"author_name"`
	ContactInfo     string    `gorm:"size:255" json:"contact_info"`
	PostURL         string    `gorm:"size:500" json:"post_url"`
	RelevanceScore  *int      `json:"relevance_score"`
	Location        string    `gorm:"size:150" json:"location"`
	Status          string    `gorm:"size:20;default:'new'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func (p *FacebookProspect) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
