package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	domain "github.com/amgrenovation/ops-dashboard/internal/domain/appointment"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/httpresp"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	list    *appointment.ListAppointments
	create  *appointment.CreateAppointment
	update  *appointment.UpdateAppointment
	confirm *appointment.ConfirmAppointment
	cancel  *appointment.CancelAppointment
}

func NewAppointmentHandler(repo domain.Repository, audit *audit.Dispatcher) *AppointmentHandler {
	return &AppointmentHandler{
		repo:    repo,
		audit:   audit,
		list:    appointment.NewListAppointments(repo),
		create:  appointment.NewCreateAppointment(repo, audit),
		update:  appointment.NewUpdateAppointment(repo, audit),
		confirm: appointment.NewConfirmAppointment(repo, audit),
		cancel:  appointment.NewCancelAppointment(repo, audit),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName      string `json:"client_name" binding:"required"`
	PhoneNumber     string `json:"phone_number"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	AppointmentType string `json:"appointment_type"`
	Notes           string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ClientName      *string `json:"client_name"`
	PhoneNumber     *string `json:"phone_number"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	AppointmentType *string `json:"appointment_type"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

// ======================================================
// LIST
// ======================================================

// List answers ?date=YYYY-MM-DD, ?year=&month=, or everything by date.
func (h *AppointmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		items []models.Appointment
		err   error
	)

	switch {
	case c.Query("date") != "":
		items, err = h.list.ByDate(ctx, c.Query("date"))

	case c.Query("year") != "" || c.Query("month") != "":
		year, yErr := strconv.Atoi(c.Query("year"))
		month, mErr := strconv.Atoi(c.Query("month"))
		if yErr != nil || mErr != nil {
			httperr.BadRequest(c, "invalid_month", "Mois invalide.")
			return
		}
		items, err = h.list.ByMonth(ctx, year, month)

	default:
		items, err = h.list.Execute(ctx)
	}

	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		UserID:          middleware.UserID(c),
		ClientName:      req.ClientName,
		PhoneNumber:     req.PhoneNumber,
		Date:            req.Date,
		Time:            req.Time,
		AppointmentType: req.AppointmentType,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), appointment.UpdateAppointmentInput{
		UserID:          middleware.UserID(c),
		AppointmentID:   id,
		ClientName:      req.ClientName,
		PhoneNumber:     req.PhoneNumber,
		Date:            req.Date,
		Time:            req.Time,
		AppointmentType: req.AppointmentType,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CONFIRM / CANCEL
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_confirm_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_cancel_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteAppointment(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_appointment")
		return
	}

	writeAudit(c, h.audit, "appointment_deleted", "appointment", &id, nil)
	c.Status(http.StatusNoContent)
}
