package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/infra/repository"
	"github.com/amgrenovation/ops-dashboard/internal/testutil"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
)

func newRepo(t *testing.T) *repository.AppointmentGormRepository {
	return repository.NewAppointmentGormRepository(testutil.NewDB(t))
}

func strp(s string) *string { return &s }

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()
	uc := NewCreateAppointment(newRepo(t), nil)

	ap, err := uc.Execute(ctx, CreateAppointmentInput{
		UserID:          uuid.New(),
		ClientName:      "  Jean Dupont ",
		Date:            "2026-04-10",
		Time:            "14:30",
		AppointmentType: "Visite technique",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jean Dupont", ap.ClientName)
	assert.Equal(t, "pending", ap.Status)
	require.NotNil(t, ap.AppointmentDate)
	local := ap.AppointmentDate.In(timezone.Business())
	assert.Equal(t, 14, local.Hour())
	assert.Equal(t, 30, local.Minute())
}

func TestCreateAppointment_Validation(t *testing.T) {
	uc := NewCreateAppointment(newRepo(t), nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{ClientName: " "})
	assert.True(t, httperr.IsBusiness(err, "client_name_required"))

	_, err = uc.Execute(context.Background(), CreateAppointmentInput{ClientName: "A", Date: "10/04/2026", Time: "9h"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateAppointment_Unscheduled(t *testing.T) {
	ap, err := NewCreateAppointment(newRepo(t), nil).Execute(context.Background(), CreateAppointmentInput{ClientName: "A"})
	require.NoError(t, err)
	assert.Nil(t, ap.AppointmentDate)
}

func TestParseWhen_RFC3339(t *testing.T) {
	when, err := parseWhen("2026-04-10T08:00:00Z", "")
	require.NoError(t, err)
	assert.True(t, when.Equal(time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)))
}

func TestUpdateConfirmCancel(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := uuid.New()

	ap, err := NewCreateAppointment(repo, nil).Execute(ctx, CreateAppointmentInput{ClientName: "Marie Curie"})
	require.NoError(t, err)

	updated, err := NewUpdateAppointment(repo, nil).Execute(ctx, UpdateAppointmentInput{
		UserID:        user,
		AppointmentID: ap.ID,
		PhoneNumber:   strp("0601020304"),
		Date:          strp("2026-05-01"),
		Time:          strp("09:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0601020304", updated.PhoneNumber)
	assert.Equal(t, "Marie Curie", updated.ClientName)
	require.NotNil(t, updated.AppointmentDate)

	_, err = NewUpdateAppointment(repo, nil).Execute(ctx, UpdateAppointmentInput{AppointmentID: ap.ID, Status: strp("done")})
	assert.True(t, httperr.IsBusiness(err, "invalid_appointment_status"))

	confirmed, err := NewConfirmAppointment(repo, nil).Execute(ctx, user, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)

	cancelled, err := NewCancelAppointment(repo, nil).Execute(ctx, user, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	_, err = NewConfirmAppointment(repo, nil).Execute(ctx, user, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = NewCancelAppointment(repo, nil).Execute(ctx, user, uuid.New())
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestListAppointments(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	create := NewCreateAppointment(repo, nil)

	for _, in := range []CreateAppointmentInput{
		{ClientName: "B", Date: "2026-04-12", Time: "10:00"},
		{ClientName: "A", Date: "2026-04-10", Time: "10:00"},
		{ClientName: "C", Date: "2026-05-02", Time: "10:00"},
	} {
		_, err := create.Execute(ctx, in)
		require.NoError(t, err)
	}

	list := NewListAppointments(repo)

	all, err := list.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].ClientName)

	april, err := list.ByMonth(ctx, 2026, 4)
	require.NoError(t, err)
	assert.Len(t, april, 2)

	day, err := list.ByDate(ctx, "2026-04-12")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "B", day[0].ClientName)

	_, err = list.ByMonth(ctx, 2026, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
	_, err = list.ByDate(ctx, "12/04/2026")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
