// Package settings reads and writes the single company settings row and
// derives the workflow endpoint configuration from it.
package settings

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

type Service struct {
	db           *gorm.DB
	fallbackBase string
}

func NewService(db *gorm.DB, fallbackBase string) *Service {
	return &Service{db: db, fallbackBase: fallbackBase}
}

// Company returns the stored settings or an unsaved default row.
func (s *Service) Company(ctx context.Context) (*models.CompanySettings, error) {
	var cs models.CompanySettings
	err := s.db.WithContext(ctx).Order("created_at ASC").First(&cs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.CompanySettings{
			CompanyName: models.DefaultCompanyName,
			N8NConfig:   datatypes.JSONMap{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

// Save upserts the settings row.
func (s *Service) Save(ctx context.Context, in *models.CompanySettings) (*models.CompanySettings, error) {
	current, err := s.Company(ctx)
	if err != nil {
		return nil, err
	}

	in.ID = current.ID
	in.CreatedAt = current.CreatedAt
	if in.N8NConfig == nil {
		in.N8NConfig = datatypes.JSONMap{}
	}

	if err := s.db.WithContext(ctx).Save(in).Error; err != nil {
		return nil, err
	}
	return in, nil
}

// WebhookConfig resolves endpoints for a caller; p may be nil.
func (s *Service) WebhookConfig(ctx context.Context, p *models.Profile) (*webhook.Config, *models.CompanySettings, error) {
	cs, err := s.Company(ctx)
	if err != nil {
		return nil, nil, err
	}
	return webhook.Resolve(cs.WebhookPaths(), p.WebhookPaths(), s.fallbackBase), cs, nil
}
