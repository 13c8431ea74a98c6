package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyFile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	FileType    string     `gorm:"size:100" json:"file_type"`
	FileName    string     `gorm:"size:255;not null" json:"file_name"`
	FileContent string     `gorm:"type:text" json:"file_content,omitempty"`
	FileURL     string     `gorm:"size:500" json:"file_url"`
	StorageKey  string     `gorm:"size:500" json:"-"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	Client      *Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`
	Category    string     `gorm:"size:20;default:'other'" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *CompanyFile) BeforeCreate(*gorm.DB) error {
	ensureID(&f.ID)
	return nil
}
