package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultUserFeatures is what a freshly created account may see.
var DefaultUserFeatures = []string{"dashboard", "devis", "factures", "clients", "rdv"}

// Profile shares its primary key with User.
type Profile struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email string    `gorm:"size:150" json:"email"`
	Role  string    `gorm:"size:20;default:'user'" json:"role"`

	EnabledFeatures datatypes.JSONSlice[string] `json:"enabled_features"`
	N8NConfig       datatypes.JSONMap           `gorm:"column:n8n_config" json:"n8n_config"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDefaultProfile(id uuid.UUID, email string) *Profile {
	features := make([]string, len(DefaultUserFeatures))
	copy(features, DefaultUserFeatures)
	return &Profile{
		ID:              id,
		Email:           email,
		Role:            RoleUser,
		EnabledFeatures: features,
		N8NConfig:       datatypes.JSONMap{},
	}
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// WebhookPaths returns the string-valued entries of N8NConfig.
func (p *Profile) WebhookPaths() map[string]string {
	if p == nil {
		return nil
	}
	return stringMap(p.N8NConfig)
}

func stringMap(m datatypes.JSONMap) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
