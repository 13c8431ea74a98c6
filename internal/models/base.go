package models

import "github.com/google/uuid"

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every table the service owns, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Profile{},
		&Client{},
		&Quote{},
		&Invoice{},
		&Appointment{},
		&Review{},
		&CompanyFile{},
		&CompanySettings{},
		&FacebookPost{},
		&FacebookProspect{},
		&AllovoisinLead{},
		&AIRendering{},
		&WhatsappMessage{},
		&AuditLog{},
	}
}
