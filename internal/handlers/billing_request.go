package handlers

import (
	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/usecase/billing"
)

// --------- Requests shared by quotes and invoices ---------

type LineItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

type ClientFields struct {
	ClientID      *uuid.UUID `json:"client_id"`
	ClientName    string     `json:"client_name"`
	ClientEmail   string     `json:"client_email" binding:"omitempty,email"`
	ClientPhone   string     `json:"client_phone"`
	ClientAddress string     `json:"client_address"`
}

func (f ClientFields) ref() billing.ClientRef {
	return billing.ClientRef{
		ID:      f.ClientID,
		Name:    f.ClientName,
		Email:   f.ClientEmail,
		Phone:   f.ClientPhone,
		Address: f.ClientAddress,
	}
}

func lineItems(in []LineItemRequest) []models.LineItem {
	out := make([]models.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, models.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}
