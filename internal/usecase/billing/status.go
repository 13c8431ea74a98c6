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
)

type UpdateQuoteStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateQuoteStatus(repo domain.Repository, audit *audit.Dispatcher) *UpdateQuoteStatus {
	return &UpdateQuoteStatus{repo: repo, audit: audit}
}

func (uc *UpdateQuoteStatus) Execute(
	ctx context.Context,
	userID, quoteID uuid.UUID,
	status string,
) (*models.Quote, error) {

	s, err := domain.ParseQuoteStatus(status)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateQuoteStatus(ctx, quoteID, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "quote_status_updated",
		Entity:   "quote",
		EntityID: &quoteID,
		Metadata: map[string]string{"status": string(s)},
	})

	return uc.repo.GetQuote(ctx, quoteID)
}

type MarkInvoicePaid struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewMarkInvoicePaid(repo domain.Repository, audit *audit.Dispatcher) *MarkInvoicePaid {
	return &MarkInvoicePaid{repo: repo, audit: audit, now: timezone.Now}
}

func (uc *MarkInvoicePaid) Execute(ctx context.Context, userID, invoiceID uuid.UUID) (*models.Invoice, error) {
	inv, err := uc.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanMarkPaid(domain.InvoiceStatus(inv.Status)); err != nil {
		return nil, err
	}

	paidAt := uc.now()
	if err := uc.repo.UpdateInvoiceStatus(ctx, inv.ID, domain.InvoicePaid, &paidAt); err != nil {
		return nil, err
	}
	inv.Status = string(domain.InvoicePaid)
	inv.PaidAt = &paidAt

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "invoice_paid",
		Entity:   "invoice",
		EntityID: &inv.ID,
	})

	return inv, nil
}

// SweepOverdue flags unpaid invoices whose due date has passed.
type SweepOverdue struct {
	repo   domain.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewSweepOverdue(repo domain.Repository, logger *zap.Logger) *SweepOverdue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SweepOverdue{repo: repo, logger: logger, now: timezone.Now}
}

func (uc *SweepOverdue) Execute(ctx context.Context) (int64, error) {
	n, err := uc.repo.MarkOverdue(ctx, uc.now())
	if err != nil {
		uc.logger.Error("overdue sweep failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		uc.logger.Info("invoices marked overdue", zap.Int64("count", n))
	}
	return n, nil
}
