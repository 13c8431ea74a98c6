package crm

import (
	"strings"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

// LastAppointment returns the most recent appointment whose free-text client
// name contains fullName, ignoring case. Matching is approximate: "Jean" also
// matches "Jeanne Martin". Appointments without a date never win over dated
// ones. Returns nil when nothing matches or fullName is blank.
func LastAppointment(fullName string, appointments []models.Appointment) *models.Appointment {
	needle := strings.ToLower(strings.TrimSpace(fullName))
	if needle == "" {
		return nil
	}

	var best *models.Appointment
	for i := range appointments {
		ap := &appointments[i]
		if !strings.Contains(strings.ToLower(ap.ClientName), needle) {
			continue
		}
		if best == nil || later(ap, best) {
			best = ap
		}
	}
	return best
}

func later(a, b *models.Appointment) bool {
	switch {
	case a.AppointmentDate == nil:
		return false
	case b.AppointmentDate == nil:
		return true
	}
	return a.AppointmentDate.After(*b.AppointmentDate)
}
