package lead

import (
	"context"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

type Repository interface {
	GetLead(ctx context.Context, id uuid.UUID) (*models.AllovoisinLead, error)
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateProspectStatus(ctx context.Context, id uuid.UUID, status string) error
}
