package billing

import "github.com/amgrenovation/ops-dashboard/internal/httperr"

type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
)

type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "unpaid"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// ParseQuoteStatus validates a status supplied by a client of the API.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	switch QuoteStatus(s) {
	case QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected:
		return QuoteStatus(s), nil
	}
	return "", httperr.ErrBusiness("invalid_quote_status")
}

// CanMarkPaid rejects invoices that are already settled.
func CanMarkPaid(current InvoiceStatus) error {
	if current == InvoicePaid {
		return httperr.ErrBusiness("invoice_already_paid")
	}
	return nil
}

// IsOverdueCandidate reports whether the sweep may flag the invoice.
func IsOverdueCandidate(current InvoiceStatus) bool {
	return current == InvoiceUnpaid || current == InvoiceSent
}
