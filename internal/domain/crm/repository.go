package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

type Repository interface {
	// LoadSnapshot reads every client, quote, invoice and appointment.
	LoadSnapshot(ctx context.Context) (Snapshot, error)

	CreateClient(ctx context.Context, c *models.Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
}
