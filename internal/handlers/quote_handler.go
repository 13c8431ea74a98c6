package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
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

type QuoteHandler struct {
	db       *gorm.DB
	settings *settings.Service
	audit    *audit.Dispatcher

	create *billing.CreateQuote
	send   *billing.SendDocument
	status *billing.UpdateQuoteStatus
}

func NewQuoteHandler(
	db *gorm.DB,
	settings *settings.Service,
	audit *audit.Dispatcher,
	create *billing.CreateQuote,
	send *billing.SendDocument,
	status *billing.UpdateQuoteStatus,
) *QuoteHandler {
	return &QuoteHandler{
		db:       db,
		settings: settings,
		audit:    audit,
		create:   create,
		send:     send,
		status:   status,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateQuoteRequest struct {
	ClientFields
	Items []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *QuoteHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Preload("Client").
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var quotes []models.Quote
	if err := q.Find(&quotes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_quotes", "Erreur lors du chargement des devis.")
		return
	}

	httpresp.List(c, quotes)
}

// ======================================================
// CREATE
// ======================================================

func (h *QuoteHandler) Create(c *gin.Context) {
	var req CreateQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	hooks, _, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}

	res, err := h.create.Execute(c.Request.Context(), billing.CreateQuoteInput{
		UserID: middleware.UserID(c),
		Client: req.ref(),
		Items:  lineItems(req.Items),
		Hooks:  hooks,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_quote")
		return
	}

	httpresp.Warned(c, http.StatusCreated, "quote", res.Quote, res.Warning)
}

// ======================================================
// STATUS
// ======================================================

func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateQuoteStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.status.Execute(c.Request.Context(), middleware.UserID(c), id, req.Status)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_quote")
		return
	}

	c.JSON(http.StatusOK, quote)
}

// ======================================================
// SEND
// ======================================================

func (h *QuoteHandler) Send(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	hooks, _, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}

	res, err := h.send.Quote(c.Request.Context(), middleware.UserID(c), id, hooks)
	if err != nil {
		httperr.FromError(c, err, "failed_to_send_quote")
		return
	}

	httpresp.Warned(c, http.StatusOK, "quote", res.Quote, res.Warning)
}

// ======================================================
// DELETE
// ======================================================

func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Quote{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_quote", "Erreur lors de la suppression du devis.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "quote_not_found", "Devis introuvable.")
		return
	}

	writeAudit(c, h.audit, "quote_deleted", "quote", &id, nil)
	c.Status(http.StatusNoContent)
}
