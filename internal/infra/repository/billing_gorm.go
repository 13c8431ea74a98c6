package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/amgrenovation/ops-dashboard/internal/domain/billing"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
)

var _ domain.Repository = (*BillingGormRepository)(nil)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BillingGormRepository) CreateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *BillingGormRepository) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &c, nil
}

// --------------------------------------------------
// Quote
// --------------------------------------------------

func (r *BillingGormRepository) NextQuoteSeq(ctx context.Context, now time.Time) (int, error) {
	return r.nextSeq(ctx, &models.Quote{}, "quote_number", domain.YearPrefix("quote", now))
}

func (r *BillingGormRepository) CreateQuote(ctx context.Context, q *models.Quote) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *BillingGormRepository) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var q models.Quote
	if err := r.db.WithContext(ctx).Preload("Client").First(&q, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "quote_not_found")
	}
	return &q, nil
}

func (r *BillingGormRepository) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status domain.QuoteStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("quote_not_found")
	}
	return nil
}

// --------------------------------------------------
// Invoice
// --------------------------------------------------

func (r *BillingGormRepository) NextInvoiceSeq(ctx context.Context, now time.Time) (int, error) {
	return r.nextSeq(ctx, &models.Invoice{}, "invoice_number", domain.YearPrefix("invoice", now))
}

func (r *BillingGormRepository) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *BillingGormRepository) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.WithContext(ctx).Preload("Client").First(&inv, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "invoice_not_found")
	}
	return &inv, nil
}

func (r *BillingGormRepository) UpdateInvoiceStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.InvoiceStatus,
	paidAt *time.Time,
) error {
	fields := map[string]any{"status": string(status)}
	if paidAt != nil {
		fields["paid_at"] = *paidAt
	}
	res := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("invoice_not_found")
	}
	return nil
}

func (r *BillingGormRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("status IN ? AND due_date IS NOT NULL AND due_date < ?",
			[]string{string(domain.InvoiceUnpaid), string(domain.InvoiceSent)}, now).
		Update("status", string(domain.InvoiceOverdue))
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (r *BillingGormRepository) nextSeq(ctx context.Context, model any, column, pattern string) (int, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(model).
		Where(column+" LIKE ?", pattern).
		Pluck(column, &numbers).Error; err != nil {
		return 0, err
	}
	return domain.NextSeq(numbers), nil
}
