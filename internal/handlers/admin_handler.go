package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/httpresp"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/usecase/account"
)

type AdminHandler struct {
	db         *gorm.DB
	createUser *account.CreateUser
	update     *account.UpdateProfile
}

func NewAdminHandler(db *gorm.DB, createUser *account.CreateUser, update *account.UpdateProfile) *AdminHandler {
	return &AdminHandler{db: db, createUser: createUser, update: update}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateUserRequest struct {
	Email           string         `json:"email"`
	Password        string         `json:"password"`
	Role            string         `json:"role"`
	EnabledFeatures []string       `json:"enabled_features"`
	N8NConfig       map[string]any `json:"n8n_config"`
}

type UpdateUserRequest struct {
	Role            *string        `json:"role" binding:"omitempty,role"`
	EnabledFeatures []string       `json:"enabled_features" binding:"omitempty,dive,section"`
	N8NConfig       map[string]any `json:"n8n_config"`
}

// ======================================================
// LIST
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var profiles []models.Profile
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at ASC").
		Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Erreur lors du chargement des utilisateurs.")
		return
	}

	httpresp.List(c, profiles)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.update.Execute(c.Request.Context(), account.UpdateProfileInput{
		CallerID:        middleware.UserID(c),
		ProfileID:       id,
		Role:            req.Role,
		EnabledFeatures: req.EnabledFeatures,
		N8NConfig:       req.N8NConfig,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_user")
		return
	}

	c.JSON(http.StatusOK, p)
}

// ======================================================
// CREATE USER FUNCTION
// ======================================================

// CreateUser sits outside the authenticated group: the use case checks the
// bearer token itself. Every failure is a 400 carrying a plain message.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.createUser.Execute(c.Request.Context(), account.CreateUserInput{
		AuthorizationHeader: c.GetHeader("Authorization"),
		Email:               req.Email,
		Password:            req.Password,
		Role:                req.Role,
		EnabledFeatures:     req.EnabledFeatures,
		N8NConfig:           req.N8NConfig,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}
