package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	domain "github.com/amgrenovation/ops-dashboard/internal/domain/billing"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// CreateInvoiceInput either converts QuoteID, reusing its client and items
// when Items is empty, or bills Client directly.
type CreateInvoiceInput struct {
	UserID  uuid.UUID
	QuoteID *uuid.UUID
	Client  ClientRef
	Items   []models.LineItem
	Hooks   *webhook.Config
}

type InvoiceResult struct {
	Invoice *models.Invoice
	Warning string
}

// ======================================================
// USE CASE
// ======================================================

type CreateInvoice struct {
	repo   domain.Repository
	hooks  webhook.Sender
	audit  *audit.Dispatcher
	logger *zap.Logger
	now    func() time.Time
}

func NewCreateInvoice(
	repo domain.Repository,
	hooks webhook.Sender,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *CreateInvoice {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateInvoice{
		repo:   repo,
		hooks:  hooks,
		audit:  audit,
		logger: logger,
		now:    timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateInvoice) Execute(ctx context.Context, in CreateInvoiceInput) (*InvoiceResult, error) {

	// --------------------------------------------------
	// 1. Source quote, if converting
	// --------------------------------------------------
	var quote *models.Quote
	items := in.Items
	ref := in.Client

	if in.QuoteID != nil && *in.QuoteID != uuid.Nil {
		q, err := uc.repo.GetQuote(ctx, *in.QuoteID)
		if err != nil {
			return nil, err
		}
		quote = q
		ref = ClientRef{ID: &q.ClientID}
		if len(items) == 0 {
			items = q.Items
		}
	}

	if err := validateItems(items); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Client
	// --------------------------------------------------
	client, created, err := resolveClient(ctx, uc.repo, ref)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Number, totals, due date
	// --------------------------------------------------
	now := uc.now()
	seq, err := uc.repo.NextInvoiceSeq(ctx, now)
	if err != nil {
		uc.orphan(created, client)
		return nil, err
	}

	ht, _, ttc := domain.ComputeTotals(items).Float()
	due := domain.DueDate(now)
	inv := &models.Invoice{
		ClientID:      client.ID,
		InvoiceNumber: domain.InvoiceNumber(now, seq),
		TotalHT:       ht,
		TotalTTC:      ttc,
		TVARate:       domain.Rate(),
		Status:        string(domain.InvoiceUnpaid),
		DueDate:       &due,
		Items:         items,
	}
	if quote != nil {
		inv.QuoteID = &quote.ID
	}

	if err := uc.repo.CreateInvoice(ctx, inv); err != nil {
		uc.orphan(created, client)
		return nil, err
	}
	inv.Client = client

	// --------------------------------------------------
	// 4. Converted quote is accepted
	// --------------------------------------------------
	quoteNumber := ""
	if quote != nil {
		quoteNumber = quote.QuoteNumber
		if err := uc.repo.UpdateQuoteStatus(ctx, quote.ID, domain.QuoteAccepted); err != nil {
			uc.logger.Warn("quote status not updated after conversion",
				zap.String("quote_id", quote.ID.String()), zap.Error(err))
		}
	}

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "invoice_created",
		Entity:   "invoice",
		EntityID: &inv.ID,
		Metadata: map[string]string{"invoice_number": inv.InvoiceNumber, "quote_number": quoteNumber},
	})

	// --------------------------------------------------
	// 6. Document generation (best effort)
	// --------------------------------------------------
	res := uc.hooks.Fire(ctx, in.Hooks, webhook.HookInvoice, webhook.InvoicePayload(*inv, *client, quoteNumber, now))

	return &InvoiceResult{Invoice: inv, Warning: res.Warning()}, nil
}

func (uc *CreateInvoice) orphan(created bool, c *models.Client) {
	if created {
		uc.logger.Warn("client created without invoice", zap.String("client_id", c.ID.String()))
	}
}
