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

type CreateQuoteInput struct {
	UserID uuid.UUID
	Client ClientRef
	Items  []models.LineItem
	Hooks  *webhook.Config
}

// QuoteResult carries the stored quote and, when the workflow call did not
// go through, a warning for the caller.
type QuoteResult struct {
	Quote   *models.Quote
	Warning string
}

// ======================================================
// USE CASE
// ======================================================

type CreateQuote struct {
	repo   domain.Repository
	hooks  webhook.Sender
	audit  *audit.Dispatcher
	logger *zap.Logger
	now    func() time.Time
}

func NewCreateQuote(
	repo domain.Repository,
	hooks webhook.Sender,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *CreateQuote {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateQuote{
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

func (uc *CreateQuote) Execute(ctx context.Context, in CreateQuoteInput) (*QuoteResult, error) {

	// --------------------------------------------------
	// 1. Items
	// --------------------------------------------------
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Client (existing or new)
	// --------------------------------------------------
	client, created, err := resolveClient(ctx, uc.repo, in.Client)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Number + totals
	// --------------------------------------------------
	now := uc.now()
	seq, err := uc.repo.NextQuoteSeq(ctx, now)
	if err != nil {
		uc.orphan(created, client)
		return nil, err
	}

	ht, _, ttc := domain.ComputeTotals(in.Items).Float()
	q := &models.Quote{
		ClientID:    client.ID,
		QuoteNumber: domain.QuoteNumber(now, seq),
		TotalHT:     ht,
		TotalTTC:    ttc,
		TVARate:     domain.Rate(),
		Status:      string(domain.QuoteDraft),
		Items:       in.Items,
	}

	if err := uc.repo.CreateQuote(ctx, q); err != nil {
		uc.orphan(created, client)
		return nil, err
	}
	q.Client = client

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "quote_created",
		Entity:   "quote",
		EntityID: &q.ID,
		Metadata: map[string]string{"quote_number": q.QuoteNumber},
	})

	// --------------------------------------------------
	// 5. Document generation (best effort)
	// --------------------------------------------------
	res := uc.hooks.Fire(ctx, in.Hooks, webhook.HookQuote, webhook.QuotePayload(*q, *client, now))

	return &QuoteResult{Quote: q, Warning: res.Warning()}, nil
}

func (uc *CreateQuote) orphan(created bool, c *models.Client) {
	if created {
		uc.logger.Warn("client created without quote", zap.String("client_id", c.ID.String()))
	}
}
