package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amgrenovation/ops-dashboard/internal/domain/access"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe returns the caller's profile and the menu it unlocks. Without a
// profile the menu is the fallback set.
func (h *MeHandler) GetMe(c *gin.Context) {
	p := middleware.Profile(c)
	sections := access.VisibleSections(middleware.Identity(c))

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    middleware.UserID(c),
			"email": c.GetString(middleware.ContextUserEmail),
		},
		"profile":        p,
		"profile_loaded": p != nil,
		"menu":           sections,
	})
}

func (h *MeHandler) Menu(c *gin.Context) {
	sections := access.VisibleSections(middleware.Identity(c))
	c.JSON(http.StatusOK, gin.H{
		"sections": sections,
		"ids":      access.IDs(sections),
	})
}
