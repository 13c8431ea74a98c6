package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

type Repository interface {
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	DeleteAppointment(ctx context.Context, id uuid.UUID) error

	// ListAppointments returns appointments ordered by date, optionally
	// restricted to [from, to).
	ListAppointments(ctx context.Context, from, to *time.Time) ([]models.Appointment, error)
}
