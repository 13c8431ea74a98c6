package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/httpresp"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/settings"
	"github.com/amgrenovation/ops-dashboard/internal/usecase/social"
)

type SocialHandler struct {
	db       *gorm.DB
	settings *settings.Service

	facebook *social.PublishFacebookPost
	linkedin *social.PublishLinkedInPost
}

func NewSocialHandler(
	db *gorm.DB,
	settings *settings.Service,
	facebook *social.PublishFacebookPost,
	linkedin *social.PublishLinkedInPost,
) *SocialHandler {
	return &SocialHandler{
		db:       db,
		settings: settings,
		facebook: facebook,
		linkedin: linkedin,
	}
}

type FacebookPostRequest struct {
	Caption     string `json:"caption" binding:"required"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	ScheduledAt string `json:"scheduled_at"`
}

type LinkedInPostRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *SocialHandler) ListFacebookPosts(c *gin.Context) {
	var posts []models.FacebookPost
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_posts", "Erreur lors du chargement des publications.")
		return
	}

	httpresp.List(c, posts)
}

func (h *SocialHandler) CreateFacebookPost(c *gin.Context) {
	var req FacebookPostRequest
	if !bindJSON(c, &req) {
		return
	}

	in := social.FacebookPostInput{
		UserID:   middleware.UserID(c),
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
	}
	if req.ScheduledAt != "" {
		at, err := parseInstant(req.ScheduledAt)
		if err != nil {
			httperr.BadRequest(c, "invalid_scheduled_at", "Date de publication invalide.")
			return
		}
		in.ScheduledAt = &at
	}

	hooks, company, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}
	in.Hooks = hooks
	in.CompanyName = company.DisplayName()

	res, err := h.facebook.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_post")
		return
	}

	httpresp.Warned(c, http.StatusCreated, "post", res.Post, res.Warning)
}

// PublishLinkedIn forwards the text to the workflow, which posts from the
// account named in the company settings.
func (h *SocialHandler) PublishLinkedIn(c *gin.Context) {
	var req LinkedInPostRequest
	if !bindJSON(c, &req) {
		return
	}

	hooks, company, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}

	account, _ := company.N8NConfig[social.DefaultAccountKey].(string)

	ack, err := h.linkedin.Execute(c.Request.Context(), social.LinkedInPostInput{
		UserID:         middleware.UserID(c),
		Text:           req.Text,
		DefaultAccount: strings.TrimSpace(account),
		Hooks:          hooks,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_publish_linkedin")
		return
	}

	c.JSON(http.StatusOK, ack)
}
