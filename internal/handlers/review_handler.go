package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/httpresp"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/settings"
	"github.com/amgrenovation/ops-dashboard/internal/usecase/review"
)

type ReviewHandler struct {
	db       *gorm.DB
	settings *settings.Service

	request  *review.RequestReview
	resend   *review.ResendReview
	followUp *review.BulkFollowUp
}

func NewReviewHandler(
	db *gorm.DB,
	settings *settings.Service,
	request *review.RequestReview,
	resend *review.ResendReview,
	followUp *review.BulkFollowUp,
) *ReviewHandler {
	return &ReviewHandler{
		db:       db,
		settings: settings,
		request:  request,
		resend:   resend,
		followUp: followUp,
	}
}

type RequestReviewRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	Platform string    `json:"platform"`
}

func (h *ReviewHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Preload("Client").
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var reviews []models.Review
	if err := q.Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Erreur lors du chargement des avis.")
		return
	}

	httpresp.List(c, reviews)
}

// Request records a pending review and asks the workflow to contact the client.
func (h *ReviewHandler) Request(c *gin.Context) {
	var req RequestReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	hooks, company, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}

	platform := req.Platform
	if platform == "" {
		platform = "google"
	}

	res, err := h.request.Execute(c.Request.Context(), review.RequestReviewInput{
		UserID:      middleware.UserID(c),
		ClientID:    req.ClientID,
		Platform:    platform,
		Hooks:       hooks,
		CompanyName: company.DisplayName(),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_request_review")
		return
	}

	httpresp.Warned(c, http.StatusCreated, "review", res.Review, res.Warning)
}

func (h *ReviewHandler) Resend(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	hooks, company, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}

	res, err := h.resend.Execute(c.Request.Context(), middleware.UserID(c), id, hooks, company.DisplayName())
	if err != nil {
		httperr.FromError(c, err, "failed_to_resend_review")
		return
	}

	httpresp.Warned(c, http.StatusOK, "review", res.Review, res.Warning)
}

func (h *ReviewHandler) FollowUp(c *gin.Context) {
	hooks, company, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}

	res, err := h.followUp.Execute(c.Request.Context(), middleware.UserID(c), hooks, company.DisplayName())
	if err != nil {
		httperr.FromError(c, err, "failed_to_follow_up")
		return
	}

	c.JSON(http.StatusOK, res)
}
