package crm

import (
	"strings"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

// ClientOverview is one row of the CRM list.
type ClientOverview struct {
	models.Client
	Status          Status              `json:"status"`
	StatusColor     string              `json:"status_color"`
	LastAppointment *models.Appointment `json:"last_appointment"`
	QuoteCount      int                 `json:"quote_count"`
	InvoiceCount    int                 `json:"invoice_count"`
}

// Snapshot is every collection the CRM view reads, loaded once per request.
type Snapshot struct {
	Clients      []models.Client
	Quotes       []models.Quote
	Invoices     []models.Invoice
	Appointments []models.Appointment
}

// BuildOverview derives one row per client, preserving client order.
func BuildOverview(s Snapshot) []ClientOverview {
	quoteCount := make(map[uuid.UUID]int)
	for _, q := range s.Quotes {
		quoteCount[q.ClientID]++
	}
	invoiceCount := make(map[uuid.UUID]int)
	for _, inv := range s.Invoices {
		invoiceCount[inv.ClientID]++
	}

	out := make([]ClientOverview, 0, len(s.Clients))
	for _, c := range s.Clients {
		status := DeriveStatus(c.ID, s.Quotes, s.Invoices)
		out = append(out, ClientOverview{
			Client:          c,
			Status:          status,
			StatusColor:     status.Color(),
			LastAppointment: LastAppointment(c.FullName(), s.Appointments),
			QuoteCount:      quoteCount[c.ID],
			InvoiceCount:    invoiceCount[c.ID],
		})
	}
	return out
}

// CountByStatus returns a counter for every label, zeros included.
func CountByStatus(rows []ClientOverview) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, r := range rows {
		counts[r.Status]++
	}
	return counts
}

// MatchesQuery is the CRM search box: case-insensitive substring over the
// full name, email and phone. An empty query matches everything.
func MatchesQuery(c models.Client, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Firstname+" "+c.Lastname), q) ||
		strings.Contains(strings.ToLower(c.Email), q) ||
		strings.Contains(strings.ToLower(c.Phone), q)
}

// Filter keeps the rows whose client matches query and, when status is not
// empty, carries that status.
func Filter(rows []ClientOverview, query string, status Status) []ClientOverview {
	out := make([]ClientOverview, 0, len(rows))
	for _, r := range rows {
		if status != "" && r.Status != status {
			continue
		}
		if MatchesQuery(r.Client, query) {
			out = append(out, r)
		}
	}
	return out
}
