package lead

import "github.com/amgrenovation/ops-dashboard/internal/httperr"

const (
	LeadPending    = "pending"
	LeadInterested = "interested"
	LeadConverted  = "converted"
	LeadRejected   = "rejected"
)

const (
	ProspectNew       = "new"
	ProspectQualified = "qualified"
	ProspectContacted = "contacted"
	ProspectRejected  = "rejected"
)

func ParseLeadStatus(s string) (string, error) {
	switch s {
	case LeadPending, LeadInterested, LeadConverted, LeadRejected:
		return s, nil
	}
	return "", httperr.ErrBusiness("invalid_lead_status")
}

func ParseProspectStatus(s string) (string, error) {
	switch s {
	case ProspectNew, ProspectQualified, ProspectContacted, ProspectRejected:
		return s, nil
	}
	return "", httperr.ErrBusiness("invalid_prospect_status")
}
