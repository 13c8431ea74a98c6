package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/httpresp"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/settings"
	"github.com/amgrenovation/ops-dashboard/internal/usecase/rendering"
)

type RenderingHandler struct {
	db       *gorm.DB
	settings *settings.Service
	generate *rendering.Generate
}

func NewRenderingHandler(db *gorm.DB, settings *settings.Service, generate *rendering.Generate) *RenderingHandler {
	return &RenderingHandler{db: db, settings: settings, generate: generate}
}

func (h *RenderingHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("created_at DESC")
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_client_id", "Client invalide.")
			return
		}
		q = q.Where("client_id = ?", id)
	}

	var renderings []models.AIRendering
	if err := q.Find(&renderings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_renderings", "Erreur lors du chargement des rendus.")
		return
	}

	httpresp.List(c, renderings)
}

// Generate takes a multipart "image" and "prompt" and waits for the AI
// workflow's render.
func (h *RenderingHandler) Generate(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "image_required", "Image requise.")
		return
	}
	if fh.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Fichier trop volumineux.")
		return
	}

	var clientID *uuid.UUID
	if raw := c.PostForm("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_client_id", "Client invalide.")
			return
		}
		clientID = &id
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "image_unreadable", "Image illisible.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		httperr.BadRequest(c, "image_unreadable", "Image illisible.")
		return
	}

	hooks, company, ok := workflowFor(c, h.settings)
	if !ok {
		return
	}

	res, err := h.generate.Execute(c.Request.Context(), rendering.GenerateInput{
		UserID:      middleware.UserID(c),
		ClientID:    clientID,
		Image:       data,
		Prompt:      c.PostForm("prompt"),
		Hooks:       hooks,
		CompanyName: company.DisplayName(),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_generate_rendering")
		return
	}

	httpresp.Warned(c, http.StatusCreated, "rendering", res.Rendering, res.Warning)
}
