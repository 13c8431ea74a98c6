package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/settings"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// paramID parses the :id path segment, answering 400 when it is malformed.
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

// workflowFor resolves the workflow endpoints for the caller along with the
// company settings they were derived from.
func workflowFor(c *gin.Context, s *settings.Service) (*webhook.Config, *models.CompanySettings, bool) {
	hooks, company, err := s.WebhookConfig(c.Request.Context(), middleware.Profile(c))
	if err != nil {
		httperr.Internal(c, "settings_unavailable", "Paramètres indisponibles.")
		return nil, nil, false
	}
	return hooks, company, true
}
