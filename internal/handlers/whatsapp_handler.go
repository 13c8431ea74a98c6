package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/httpresp"
	"github.com/amgrenovation/ops-dashboard/internal/models"
)

// defaultWhatsappNumber is used when the conversation has no message yet.
const defaultWhatsappNumber = "+33 6 00 00 00 00"

type WhatsappHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewWhatsappHandler(db *gorm.DB, audit *audit.Dispatcher) *WhatsappHandler {
	return &WhatsappHandler{db: db, audit: audit}
}

type SendWhatsappRequest struct {
	Message     string `json:"message" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}

// List returns the conversation oldest first. ?since= limits it to
// messages received after that instant, for polling clients.
func (h *WhatsappHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("received_at ASC")

	if raw := c.Query("since"); raw != "" {
		since, err := parseInstant(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_since", "Paramètre since invalide.")
			return
		}
		q = q.Where("received_at > ?", since)
	}

	var messages []models.WhatsappMessage
	if err := q.Find(&messages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_messages", "Erreur lors du chargement des messages.")
		return
	}

	httpresp.List(c, messages)
}

// Send records an assistant reply on the conversation's number.
func (h *WhatsappHandler) Send(c *gin.Context) {
	var req SendWhatsappRequest
	if !bindJSON(c, &req) {
		return
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		httperr.BadRequest(c, "message_required", "Message requis.")
		return
	}

	phone := strings.TrimSpace(req.PhoneNumber)
	if phone == "" {
		var first models.WhatsappMessage
		err := h.db.WithContext(c.Request.Context()).
			Order("received_at ASC").
			Limit(1).
			Find(&first).Error
		if err != nil {
			httperr.Internal(c, "failed_to_load_conversation", "Erreur lors du chargement de la conversation.")
			return
		}
		phone = first.PhoneNumber
	}
	if phone == "" {
		phone = defaultWhatsappNumber
	}

	msg := models.WhatsappMessage{
		PhoneNumber:    phone,
		Sender:         models.SenderAssistant,
		MessageContent: text,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&msg).Error; err != nil {
		httperr.Internal(c, "failed_to_send_message", "Erreur lors de l'envoi du message.")
		return
	}

	writeAudit(c, h.audit, "whatsapp_sent", "whatsapp_message", &msg.ID, nil)
	c.JSON(http.StatusCreated, msg)
}
