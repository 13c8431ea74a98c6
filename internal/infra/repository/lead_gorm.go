package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/domain/lead"
)

var _ lead.Repository = (*LeadGormRepository)(nil)

type LeadGormRepository struct {
	db *gorm.DB
}

func NewLeadGormRepository(db *gorm.DB) *LeadGormRepository {
	return &LeadGormRepository{db: db}
}

func (r *LeadGormRepository) GetLead(ctx context.Context, id uuid.UUID) (*models.AllovoisinLead, error) {
	var l models.AllovoisinLead
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "lead_not_found")
	}
	return &l, nil
}

func (r *LeadGormRepository) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) error {
	return updateStatus(ctx, r.db, &models.AllovoisinLead{}, id, status, "lead_not_found")
}

func (r *LeadGormRepository) UpdateProspectStatus(ctx context.Context, id uuid.UUID, status string) error {
	return updateStatus(ctx, r.db, &models.FacebookProspect{}, id, status, "prospect_not_found")
}

func updateStatus(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, status, missing string) error {
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(missing)
	}
	return nil
}
