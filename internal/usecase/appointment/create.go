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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID uuid.UUID

	ClientName  string
	PhoneNumber string

	Date string
	Time string

	AppointmentType string
	Notes           string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Client name is the only link to the CRM
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return nil, httperr.ErrBusiness("client_name_required")
	}

	// --------------------------------------------------
	// 2. Date / time in the business timezone
	// --------------------------------------------------
	when, err := parseWhen(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientName:      name,
		PhoneNumber:     strings.TrimSpace(in.PhoneNumber),
		AppointmentDate: when,
		AppointmentType: in.AppointmentType,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
