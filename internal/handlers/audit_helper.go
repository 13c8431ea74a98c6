package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
)

// writeAudit queues an audit event attributed to the authenticated caller.
func writeAudit(
	c *gin.Context,
	d *audit.Dispatcher,
	action string,
	entity string,
	entityID *uuid.UUID,
	meta any,
) {
	var userID *uuid.UUID
	if id := middleware.UserID(c); id != uuid.Nil {
		userID = &id
	}

	d.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	})
}
