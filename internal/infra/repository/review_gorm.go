package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/domain/review"
)

var _ review.Repository = (*ReviewGormRepository)(nil)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &c, nil
}

func (r *ReviewGormRepository) CreateReview(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewGormRepository) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var rv models.Review
	if err := r.db.WithContext(ctx).Preload("Client").First(&rv, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "review_not_found")
	}
	return &rv, nil
}

func (r *ReviewGormRepository) MarkReviewRequested(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": review.StatusPending, "sent_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("review_not_found")
	}
	return nil
}

func (r *ReviewGormRepository) ClientsAwaitingReview(ctx context.Context) ([]models.Client, error) {
	db := r.db.WithContext(ctx)
	var clients []models.Client
	err := db.
		Where("id IN (?)", db.Model(&models.Invoice{}).Select("client_id")).
		Where("id NOT IN (?)", db.Model(&models.Review{}).Select("client_id")).
		Order("created_at ASC").
		Find(&clients).Error
	return clients, err
}
