package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Invoice struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uuid.UUID  `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   *Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client,omitempty"`
	QuoteID  *uuid.UUID `gorm:"type:uuid;index" json:"quote_id"`

	InvoiceNumber string     `gorm:"size:30;uniqueIndex;not null" json:"invoice_number"`
	TotalHT       float64    `gorm:"type:numeric(12,2)" json:"total_ht"`
	TotalTTC      float64    `gorm:"type:numeric(12,2)" json:"total_ttc"`
	TVARate       float64    `gorm:"type:numeric(5,2)" json:"tva_rate"`
	Status        string     `gorm:"size:20;default:'unpaid'" json:"status"`
	DueDate       *time.Time `json:"due_date"`
	PaidAt        *time.Time `json:"paid_at"`
	PDFURL        string     `gorm:"size:500" json:"pdf_url"`

	Items datatypes.JSONSlice[LineItem] `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
