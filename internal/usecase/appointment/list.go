package appointment

import (
	"context"
	"time"

	domain "github.com/amgrenovation/ops-dashboard/internal/domain/appointment"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists every appointment ordered by date.
func (uc *ListAppointments) Execute(ctx context.Context) ([]models.Appointment, error) {
	return uc.repo.ListAppointments(ctx, nil, nil)
}

// ByDate lists one calendar day ("2006-01-02") in the business timezone.
func (uc *ListAppointments) ByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	day, err := time.ParseInLocation("2006-01-02", date, timezone.Business())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	end := day.AddDate(0, 0, 1)
	return uc.repo.ListAppointments(ctx, &day, &end)
}

// ByMonth lists one calendar month in the business timezone.
func (uc *ListAppointments) ByMonth(ctx context.Context, year, month int) ([]models.Appointment, error) {
	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, timezone.Business())
	end := start.AddDate(0, 1, 0)
	return uc.repo.ListAppointments(ctx, &start, &end)
}
