package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amgrenovation/ops-dashboard/internal/domain/access"
	"github.com/amgrenovation/ops-dashboard/internal/logger"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/profile"
)

// LoadProfile resolves the caller's profile once per request. A failed load
// is not fatal: the request continues without a profile and the gate falls
// back to the minimal section set.
func LoadProfile(resolver profile.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := resolver.Resolve(c.Request.Context(), UserID(c))
		if err != nil {
			logger.FromGin(c).Warn("profile load failed, using fallback sections", zap.Error(err))
		} else {
			c.Set(ContextProfile, p)
		}
		c.Next()
	}
}

// Profile returns the profile loaded by LoadProfile, nil when unavailable.
func Profile(c *gin.Context) *models.Profile {
	if v, ok := c.Get(ContextProfile); ok {
		if p, ok := v.(*models.Profile); ok {
			return p
		}
	}
	return nil
}

// Identity adapts the request profile to the feature gate.
func Identity(c *gin.Context) access.Identity {
	p := Profile(c)
	if p == nil {
		return access.Identity{}
	}
	return access.Identity{
		Loaded:   true,
		Features: p.EnabledFeatures,
		Role:     access.Role(p.Role),
	}
}

// RequireSection rejects callers whose visible menu lacks section.
func RequireSection(section string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !access.Allows(Identity(c), section) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "section_disabled",
				"section": section,
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin checks the stored role, not the token claim.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Profile(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_only"})
			return
		}
		c.Next()
	}
}
