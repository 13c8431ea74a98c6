package lead

import (
	"context"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	domain "github.com/amgrenovation/ops-dashboard/internal/domain/lead"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(repo domain.Repository, audit *audit.Dispatcher) *UpdateStatus {
	return &UpdateStatus{repo: repo, audit: audit}
}

func (uc *UpdateStatus) Lead(ctx context.Context, userID, id uuid.UUID, status string) error {
	s, err := domain.ParseLeadStatus(status)
	if err != nil {
		return err
	}
	if err := uc.repo.UpdateLeadStatus(ctx, id, s); err != nil {
		return err
	}
	uc.dispatch(userID, id, "allovoisin_lead", s)
	return nil
}

func (uc *UpdateStatus) Prospect(ctx context.Context, userID, id uuid.UUID, status string) error {
	s, err := domain.ParseProspectStatus(status)
	if err != nil {
		return err
	}
	if err := uc.repo.UpdateProspectStatus(ctx, id, s); err != nil {
		return err
	}
	uc.dispatch(userID, id, "facebook_prospect", s)
	return nil
}

func (uc *UpdateStatus) dispatch(userID, id uuid.UUID, entity, status string) {
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   entity + "_status_updated",
		Entity:   entity,
		EntityID: &id,
		Metadata: map[string]string{"status": status},
	})
}
