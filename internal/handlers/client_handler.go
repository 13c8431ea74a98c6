package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/domain/crm"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
)

type ClientHandler struct {
	repo  crm.Repository
	audit *audit.Dispatcher
}

func NewClientHandler(repo crm.Repository, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{repo: repo, audit: audit}
}

type ClientRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Notes     *string `json:"notes"`
}

func (r ClientRequest) apply(c *models.Client) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.Firstname, r.Firstname)
	set(&c.Lastname, r.Lastname)
	set(&c.Email, r.Email)
	set(&c.Phone, r.Phone)
	set(&c.Address, r.Address)
	if r.Notes != nil {
		c.Notes = *r.Notes
	}
}

// ======================================================
// LIST (CRM overview)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	snap, err := h.repo.LoadSnapshot(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erreur lors du chargement des clients.")
		return
	}

	rows := crm.BuildOverview(snap)
	stats := crm.CountByStatus(rows)
	rows = crm.Filter(rows, c.Query("query"), crm.Status(c.Query("status")))

	c.JSON(http.StatusOK, gin.H{
		"data":  rows,
		"total": len(rows),
		"stats": stats,
	})
}

// ======================================================
// CREATE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	var client models.Client
	req.apply(&client)
	if client.Firstname == "" && client.Lastname == "" {
		httperr.BadRequest(c, "client_name_required", "Nom du client requis.")
		return
	}

	if err := h.repo.CreateClient(c.Request.Context(), &client); err != nil {
		httperr.FromError(c, err, "failed_to_create_client")
		return
	}

	writeAudit(c, h.audit, "client_created", "client", &client.ID, nil)
	c.JSON(http.StatusCreated, client)
}

// ======================================================
// UPDATE
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.repo.GetClient(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_load_client")
		return
	}

	req.apply(client)
	if err := h.repo.UpdateClient(c.Request.Context(), client); err != nil {
		httperr.FromError(c, err, "failed_to_update_client")
		return
	}

	writeAudit(c, h.audit, "client_updated", "client", &client.ID, nil)
	c.JSON(http.StatusOK, client)
}

// ======================================================
// DELETE
// ======================================================
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteClient(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_client")
		return
	}

	writeAudit(c, h.audit, "client_deleted", "client", &id, nil)
	c.Status(http.StatusNoContent)
}
