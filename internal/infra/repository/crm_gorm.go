package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/amgrenovation/ops-dashboard/internal/domain/crm"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
)

var _ domain.Repository = (*CRMGormRepository)(nil)

type CRMGormRepository struct {
	db *gorm.DB
}

func NewCRMGormRepository(db *gorm.DB) *CRMGormRepository {
	return &CRMGormRepository{db: db}
}

func (r *CRMGormRepository) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	var s domain.Snapshot
	db := r.db.WithContext(ctx)

	if err := db.Order("created_at DESC").Find(&s.Clients).Error; err != nil {
		return s, err
	}
	if err := db.Select("id", "client_id", "status").Find(&s.Quotes).Error; err != nil {
		return s, err
	}
	if err := db.Select("id", "client_id", "status").Find(&s.Invoices).Error; err != nil {
		return s, err
	}
	if err := db.Order("appointment_date DESC").Find(&s.Appointments).Error; err != nil {
		return s, err
	}
	return s, nil
}

func (r *CRMGormRepository) CreateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CRMGormRepository) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &c, nil
}

func (r *CRMGormRepository) UpdateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CRMGormRepository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("client_not_found")
	}
	return nil
}
