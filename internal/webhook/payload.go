package webhook

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
)

// DocumentPayload is the flat shape expected by the document generation
// workflows. Keys are the labels printed on the generated PDF.
type DocumentPayload struct {
	Date          string  `json:"Date"`
	Nom           string  `json:"Nom"`
	Prenom        string  `json:"Prénom"`
	Adresse       string  `json:"Adresse"`
	Email         string  `json:"Email"`
	PrixHT        float64 `json:"Prix HT"`
	TVA           float64 `json:"TVA"`
	PrixTTC       float64 `json:"Prix TTC"`
	Description   string  `json:"Description"`
	QuoteNumber   string  `json:"Numéro de devis,omitempty"`
	InvoiceNumber string  `json:"Numéro de facture,omitempty"`
	Delai         string  `json:"Délai,omitempty"`
	TypeTravaux   string  `json:"Type de travaux,omitempty"`
	Validite      string  `json:"Validité,omitempty"`
}

const (
	quoteValidity = "30 jours"
	quoteDelay    = "1 mois"
	worksType     = "Rénovation"
)

// QuotePayload builds the generation request for a quote.
func QuotePayload(q models.Quote, c models.Client, issued time.Time) DocumentPayload {
	return DocumentPayload{
		Date:        timezone.FrenchDate(issued),
		Nom:         c.Lastname,
		Prenom:      c.Firstname,
		Adresse:     c.Address,
		Email:       c.Email,
		PrixHT:      q.TotalHT,
		TVA:         q.TVARate,
		PrixTTC:     q.TotalTTC,
		Description: DescribeItems(q.Items),
		QuoteNumber: q.QuoteNumber,
		Delai:       quoteDelay,
		TypeTravaux: worksType,
		Validite:    quoteValidity,
	}
}

// InvoicePayload builds the generation request for an invoice. quoteNumber is
// the originating quote, "N/A" when the invoice was created directly.
func InvoicePayload(inv models.Invoice, c models.Client, quoteNumber string, issued time.Time) DocumentPayload {
	if quoteNumber == "" {
		quoteNumber = "N/A"
	}
	return DocumentPayload{
		Date:          timezone.FrenchDate(issued),
		Nom:           c.Lastname,
		Prenom:        c.Firstname,
		Adresse:       c.Address,
		Email:         c.Email,
		PrixHT:        inv.TotalHT,
		TVA:           inv.TVARate,
		PrixTTC:       inv.TotalTTC,
		Description:   DescribeItems(inv.Items),
		InvoiceNumber: inv.InvoiceNumber,
		QuoteNumber:   quoteNumber,
	}
}

// DescribeItems renders one "description (xN)" line per item.
func DescribeItems(items []models.LineItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s (x%s)", it.Description, strconv.FormatFloat(it.Quantity, 'f', -1, 64)))
	}
	return strings.Join(lines, "\n")
}

type ReviewRequest struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	CompanyName string `json:"company_name"`
	ReviewID    string `json:"review_id"`
}

type SocialPost struct {
	Caption     string     `json:"caption"`
	ImageURL    string     `json:"image_url,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CompanyName string     `json:"company_name"`
}

type LinkedInPost struct {
	Text  string `json:"text"`
	Email string `json:"email,omitempty"`
}

// RenderRequest carries the source picture as base64.
type RenderRequest struct {
	Image       string `json:"image"`
	Prompt      string `json:"prompt"`
	CompanyName string `json:"company_name"`
}

// RenderResponse accepts the field names used by the workflow revisions.
type RenderResponse struct {
	ImageURL     string `json:"image_url"`
	ResultImage  string `json:"resultImage"`
	GeneratedURL string `json:"generated_url"`
}

func (r RenderResponse) Image() string {
	for _, s := range []string{r.ImageURL, r.ResultImage, r.GeneratedURL} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Ack is the optional body returned by secure workflows.
type Ack struct {
	OK      *bool  `json:"ok"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
