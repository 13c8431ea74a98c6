package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	domain "github.com/amgrenovation/ops-dashboard/internal/domain/billing"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// SendDocument marks a quote or invoice as sent, then asks the workflow to
// deliver it. The local status change stands whatever the workflow answers.
type SendDocument struct {
	repo  domain.Repository
	hooks webhook.Sender
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewSendDocument(
	repo domain.Repository,
	hooks webhook.Sender,
	audit *audit.Dispatcher,
) *SendDocument {
	return &SendDocument{
		repo:  repo,
		hooks: hooks,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *SendDocument) Quote(
	ctx context.Context,
	userID, quoteID uuid.UUID,
	hooks *webhook.Config,
) (*QuoteResult, error) {

	q, err := uc.repo.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateQuoteStatus(ctx, q.ID, domain.QuoteSent); err != nil {
		return nil, err
	}
	q.Status = string(domain.QuoteSent)

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "quote_sent",
		Entity:   "quote",
		EntityID: &q.ID,
	})

	client := clientOf(q.Client)
	res := uc.hooks.Fire(ctx, hooks, webhook.HookQuote, webhook.QuotePayload(*q, client, uc.now()))
	return &QuoteResult{Quote: q, Warning: res.Warning()}, nil
}

func (uc *SendDocument) Invoice(
	ctx context.Context,
	userID, invoiceID uuid.UUID,
	hooks *webhook.Config,
) (*InvoiceResult, error) {

	inv, err := uc.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if domain.InvoiceStatus(inv.Status) != domain.InvoicePaid {
		if err := uc.repo.UpdateInvoiceStatus(ctx, inv.ID, domain.InvoiceSent, nil); err != nil {
			return nil, err
		}
		inv.Status = string(domain.InvoiceSent)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "invoice_sent",
		Entity:   "invoice",
		EntityID: &inv.ID,
	})

	quoteNumber := ""
	if inv.QuoteID != nil {
		if q, err := uc.repo.GetQuote(ctx, *inv.QuoteID); err == nil {
			quoteNumber = q.QuoteNumber
		}
	}

	client := clientOf(inv.Client)
	res := uc.hooks.Fire(ctx, hooks, webhook.HookInvoice, webhook.InvoicePayload(*inv, client, quoteNumber, uc.now()))
	return &InvoiceResult{Invoice: inv, Warning: res.Warning()}, nil
}

func clientOf(c *models.Client) models.Client {
	if c == nil {
		return models.Client{}
	}
	return *c
}
