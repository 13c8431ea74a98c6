package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

type Repository interface {
	GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	CreateReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error)
	MarkReviewRequested(ctx context.Context, id uuid.UUID, at time.Time) error
	// ClientsAwaitingReview returns clients that were invoiced and never
	// asked for a review.
	ClientsAwaitingReview(ctx context.Context) ([]models.Client, error)
}

const (
	StatusPending  = "pending"
	StatusReceived = "received"
)
