package crm

import (
	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

// Status is the derived CRM label of a client. It is never persisted.
type Status string

const (
	StatusInvoicePaid   Status = "Facture payée"
	StatusPending       Status = "En attente"
	StatusQuoteAccepted Status = "Devis accepté"
	StatusQuoteSent     Status = "Devis envoyé"
	StatusRejected      Status = "Refusé"
	StatusNew           Status = "Nouveau"
)

// Statuses lists every label in priority order.
var Statuses = []Status{
	StatusInvoicePaid,
	StatusPending,
	StatusQuoteAccepted,
	StatusQuoteSent,
	StatusRejected,
	StatusNew,
}

var colors = map[Status]string{
	StatusInvoicePaid:   "#22c55e",
	StatusQuoteAccepted: "#10b981",
	StatusPending:       "#eab308",
	StatusQuoteSent:     "#3b82f6",
	StatusRejected:      "#ef4444",
	StatusNew:           "#8b5cf6",
}

// Color is the badge colour the dashboard uses for the label.
func (s Status) Color() string {
	if c, ok := colors[s]; ok {
		return c
	}
	return colors[StatusNew]
}

// DeriveStatus computes the label for clientID from the full quote and invoice
// collections. Only records belonging to the client are considered; the first
// matching rule wins.
func DeriveStatus(clientID uuid.UUID, quotes []models.Quote, invoices []models.Invoice) Status {
	var (
		hasAny                   bool
		paid, pending            bool
		accepted, sent, rejected bool
	)

	for _, inv := range invoices {
		if inv.ClientID != clientID {
			continue
		}
		hasAny = true
		switch inv.Status {
		case "paid":
			paid = true
		case "pending", "sent":
			pending = true
		}
	}

	for _, q := range quotes {
		if q.ClientID != clientID {
			continue
		}
		hasAny = true
		switch q.Status {
		case "accepted":
			accepted = true
		case "sent":
			sent = true
		case "rejected":
			rejected = true
		}
	}

	switch {
	case paid:
		return StatusInvoicePaid
	case pending:
		return StatusPending
	case accepted:
		return StatusQuoteAccepted
	case sent:
		return StatusQuoteSent
	case rejected:
		return StatusRejected
	case hasAny:
		return StatusPending
	default:
		return StatusNew
	}
}
