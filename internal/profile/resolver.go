// Package profile loads the role and feature set attached to an identity.
package profile

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

type Resolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// DBResolver reads profiles from the profiles table.
type DBResolver struct {
	db *gorm.DB
}

func NewDBResolver(db *gorm.DB) *DBResolver {
	return &DBResolver{db: db}
}

func (r *DBResolver) Resolve(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
