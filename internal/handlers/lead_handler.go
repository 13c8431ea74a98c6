package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/httpresp"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/settings"
	"github.com/amgrenovation/ops-dashboard/internal/usecase/lead"
)

// LeadHandler serves the two prospecting inboxes: marketplace leads and
// Facebook prospects. Both are filled by workflows; the dashboard only
// triages them.
type LeadHandler struct {
	db       *gorm.DB
	settings *settings.Service

	status  *lead.UpdateStatus
	convert *lead.ConvertLead
}

func NewLeadHandler(
	db *gorm.DB,
	settings *settings.Service,
	status *lead.UpdateStatus,
	convert *lead.ConvertLead,
) *LeadHandler {
	return &LeadHandler{
		db:       db,
		settings: settings,
		status:   status,
		convert:  convert,
	}
}

type LeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// ALLOVOISIN
// ======================================================

func (h *LeadHandler) ListLeads(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var leads []models.AllovoisinLead
	if err := q.Find(&leads).Error; err != nil {
		httperr.Internal(c, "failed_to_list_leads", "Erreur lors du chargement des leads.")
		return
	}

	httpresp.List(c, leads)
}

func (h *LeadHandler) UpdateLeadStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req LeadStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.status.Lead(c.Request.Context(), middleware.UserID(c), id, req.Status); err != nil {
		httperr.FromError(c, err, "failed_to_update_lead")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// Convert drafts a quote from the lead and marks it converted.
func (h *LeadHandler) Convert(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	hooks, _, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}

	res, err := h.convert.Execute(c.Request.Context(), middleware.UserID(c), id, hooks)
	if err != nil {
		httperr.FromError(c, err, "failed_to_convert_lead")
		return
	}

	httpresp.Warned(c, http.StatusCreated, "quote", res.Quote, res.Warning)
}

// ======================================================
// FACEBOOK PROSPECTS
// ======================================================

func (h *LeadHandler) ListProspects(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var prospects []models.FacebookProspect
	if err := q.Find(&prospects).Error; err != nil {
		httperr.Internal(c, "failed_to_list_prospects", "Erreur lors du chargement des prospects.")
		return
	}

	httpresp.List(c, prospects)
}

func (h *LeadHandler) UpdateProspectStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req LeadStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.status.Prospect(c.Request.Context(), middleware.UserID(c), id, req.Status); err != nil {
		httperr.FromError(c, err, "failed_to_update_prospect")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}
