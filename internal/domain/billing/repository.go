package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

type Repository interface {
	// -------- Client --------
	CreateClient(ctx context.Context, c *models.Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error)

	// -------- Quote --------
	NextQuoteSeq(ctx context.Context, now time.Time) (int, error)
	CreateQuote(ctx context.Context, q *models.Quote) error
	GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status QuoteStatus) error

	// -------- Invoice --------
	NextInvoiceSeq(ctx context.Context, now time.Time) (int, error)
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status InvoiceStatus, paidAt *time.Time) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}
