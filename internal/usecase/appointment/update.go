package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	domain "github.com/amgrenovation/ops-dashboard/internal/domain/appointment"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
)

// UpdateAppointmentInput replaces the editable fields. A nil pointer keeps
// the stored value.
type UpdateAppointmentInput struct {
	UserID        uuid.UUID
	AppointmentID uuid.UUID

	ClientName      *string
	PhoneNumber     *string
	Date            *string
	Time            *string
	AppointmentType *string
	Status          *string
	Notes           *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if in.ClientName != nil {
		name := strings.TrimSpace(*in.ClientName)
		if name == "" {
			return nil, httperr.ErrBusiness("client_name_required")
		}
		ap.ClientName = name
	}
	if in.PhoneNumber != nil {
		ap.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Date != nil || in.Time != nil {
		when, err := parseWhen(deref(in.Date), deref(in.Time))
		if err != nil {
			return nil, err
		}
		ap.AppointmentDate = when
	}
	if in.AppointmentType != nil {
		ap.AppointmentType = *in.AppointmentType
	}
	if in.Status != nil {
		status, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		ap.Status = string(status)
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
