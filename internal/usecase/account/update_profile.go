package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/domain/access"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/validators"
)

// Invalidator drops cached copies of a profile.
type Invalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// UpdateProfileInput patches a profile. Nil fields are left untouched.
type UpdateProfileInput struct {
	CallerID  uuid.UUID
	ProfileID uuid.UUID

	Role            *string
	EnabledFeatures []string
	N8NConfig       map[string]any
}

type UpdateProfile struct {
	db    *gorm.DB
	cache Invalidator
	audit *audit.Dispatcher
}

func NewUpdateProfile(db *gorm.DB, cache Invalidator, audit *audit.Dispatcher) *UpdateProfile {
	return &UpdateProfile{db: db, cache: cache, audit: audit}
}

func (uc *UpdateProfile) Execute(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	var p models.Profile
	if err := uc.db.WithContext(ctx).First(&p, "id = ?", in.ProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("profile_not_found")
		}
		return nil, err
	}

	if in.Role != nil {
		switch *in.Role {
		case models.RoleAdmin, models.RoleUser:
		default:
			return nil, httperr.ErrBusiness("invalid_role")
		}
		if in.CallerID == p.ID && *in.Role != models.RoleAdmin {
			return nil, httperr.ErrBusiness("cannot_demote_self")
		}
		p.Role = *in.Role
	}
	if in.EnabledFeatures != nil {
		for _, f := range in.EnabledFeatures {
			if !access.IsKnown(f) {
				return nil, httperr.ErrBusiness("unknown_feature")
			}
		}
		p.EnabledFeatures = append([]string(nil), in.EnabledFeatures...)
	}
	if in.N8NConfig != nil {
		if err := validators.WebhookConfig(in.N8NConfig); err != nil {
			return nil, err
		}
		p.N8NConfig = datatypes.JSONMap(in.N8NConfig)
	}

	if err := uc.db.WithContext(ctx).
		Model(&p).
		Select("role", "enabled_features", "n8n_config").
		Updates(&p).Error; err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, p.ID)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CallerID,
		Action:   "profile_updated",
		Entity:   "profile",
		EntityID: &p.ID,
	})

	return &p, nil
}
