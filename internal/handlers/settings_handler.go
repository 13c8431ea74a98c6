package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/settings"
	"github.com/amgrenovation/ops-dashboard/internal/validators"
)

type SettingsHandler struct {
	settings *settings.Service
	audit    *audit.Dispatcher
}

func NewSettingsHandler(settings *settings.Service, audit *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{settings: settings, audit: audit}
}

type SettingsRequest struct {
	CompanyName string         `json:"company_name" binding:"required"`
	Email       string         `json:"email" binding:"omitempty,email"`
	Phone       string         `json:"phone"`
	Address     string         `json:"address"`
	Siret       string         `json:"siret" binding:"omitempty,numeric,len=14"`
	TVANumber   string         `json:"tva_number"`
	N8NConfig   map[string]any `json:"n8n_config"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	cs, err := h.settings.Company(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "settings_unavailable", "Paramètres indisponibles.")
		return
	}
	c.JSON(http.StatusOK, cs)
}

// Put replaces the company settings; workflow entries are validated first.
func (h *SettingsHandler) Put(c *gin.Context) {
	var req SettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := validators.WebhookConfig(req.N8NConfig); err != nil {
		httperr.FromError(c, err, "invalid_n8n_config")
		return
	}

	cs, err := h.settings.Save(c.Request.Context(), &models.CompanySettings{
		CompanyName: strings.TrimSpace(req.CompanyName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		Siret:       strings.TrimSpace(req.Siret),
		TVANumber:   strings.TrimSpace(req.TVANumber),
		N8NConfig:   datatypes.JSONMap(req.N8NConfig),
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_settings", "Erreur lors de l'enregistrement des paramètres.")
		return
	}

	writeAudit(c, h.audit, "settings_updated", "company_settings", &cs.ID, nil)
	c.JSON(http.StatusOK, cs)
}
