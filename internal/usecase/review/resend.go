package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	domain "github.com/amgrenovation/ops-dashboard/internal/domain/review"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// ResendReview calls the workflow first and only touches the stored review
// when the call succeeded.
type ResendReview struct {
	repo  domain.Repository
	hooks webhook.Sender
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewResendReview(repo domain.Repository, hooks webhook.Sender, audit *audit.Dispatcher) *ResendReview {
	return &ResendReview{repo: repo, hooks: hooks, audit: audit, now: timezone.Now}
}

func (uc *ResendReview) Execute(
	ctx context.Context,
	userID, reviewID uuid.UUID,
	hooks *webhook.Config,
	companyName string,
) (*Result, error) {

	r, err := uc.repo.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	var client models.Client
	if r.Client != nil {
		client = *r.Client
	}

	res := uc.hooks.Fire(ctx, hooks, webhook.HookReview, payload(r, client, companyName))
	switch res.Outcome {
	case webhook.OutcomeSkipped:
		return &Result{Review: r, Warning: res.Warning()}, nil
	case webhook.OutcomeFailed:
		return nil, httperr.ErrUpstream("review_request_failed", res.Err)
	}

	at := uc.now()
	if err := uc.repo.MarkReviewRequested(ctx, r.ID, at); err != nil {
		return nil, err
	}
	r.Status = domain.StatusPending
	r.SentAt = &at

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "review_resent",
		Entity:   "review",
		EntityID: &r.ID,
	})

	return &Result{Review: r}, nil
}
