package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/httpresp"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/settings"
	"github.com/amgrenovation/ops-dashboard/internal/usecase/billing"
)

// ======================================================
// HANDLER
// ======================================================

type InvoiceHandler struct {
	db       *gorm.DB
	settings *settings.Service
	audit    *audit.Dispatcher

	create *billing.CreateInvoice
	send   *billing.SendDocument
	paid   *billing.MarkInvoicePaid
}

func NewInvoiceHandler(
	db *gorm.DB,
	settings *settings.Service,
	audit *audit.Dispatcher,
	create *billing.CreateInvoice,
	send *billing.SendDocument,
	paid *billing.MarkInvoicePaid,
) *InvoiceHandler {
	return &InvoiceHandler{
		db:       db,
		settings: settings,
		audit:    audit,
		create:   create,
		send:     send,
		paid:     paid,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateInvoiceRequest converts QuoteID when set; Items may then be omitted.
type CreateInvoiceRequest struct {
	ClientFields
	QuoteID *uuid.UUID        `json:"quote_id"`
	Items   []LineItemRequest `json:"items" binding:"omitempty,dive"`
}

// ======================================================
// LIST
// ======================================================

func (h *InvoiceHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Preload("Client").
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		httperr.Internal(c, "failed_to_list_invoices", "Erreur lors du chargement des factures.")
		return
	}

	httpresp.List(c, invoices)
}

// ======================================================
// CREATE
// ======================================================

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	hooks, _, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}

	res, err := h.create.Execute(c.Request.Context(), billing.CreateInvoiceInput{
		UserID:  middleware.UserID(c),
		QuoteID: req.QuoteID,
		Client:  req.ref(),
		Items:   lineItems(req.Items),
		Hooks:   hooks,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_invoice")
		return
	}

	httpresp.Warned(c, http.StatusCreated, "invoice", res.Invoice, res.Warning)
}

// ======================================================
// SEND
// ======================================================

func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	hooks, _, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}

	res, err := h.send.Invoice(c.Request.Context(), middleware.UserID(c), id, hooks)
	if err != nil {
		httperr.FromError(c, err, "failed_to_send_invoice")
		return
	}

	httpresp.Warned(c, http.StatusOK, "invoice", res.Invoice, res.Warning)
}

// ======================================================
// PAID
// ======================================================

func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	inv, err := h.paid.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_mark_paid")
		return
	}

	c.JSON(http.StatusOK, inv)
}

// ======================================================
// DELETE
// ======================================================

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Invoice{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_invoice", "Erreur lors de la suppression de la facture.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "invoice_not_found", "Facture introuvable.")
		return
	}

	writeAudit(c, h.audit, "invoice_deleted", "invoice", &id, nil)
	c.Status(http.StatusNoContent)
}
