package review

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	domain "github.com/amgrenovation/ops-dashboard/internal/domain/review"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type RequestReviewInput struct {
	UserID      uuid.UUID
	ClientID    uuid.UUID
	Platform    string
	Hooks       *webhook.Config
	CompanyName string
}

type Result struct {
	Review  *models.Review
	Warning string
}

// ======================================================
// USE CASE
// ======================================================

// RequestReview records a pending review request and asks the workflow to
// contact the client.
type RequestReview struct {
	repo  domain.Repository
	hooks webhook.Sender
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewRequestReview(repo domain.Repository, hooks webhook.Sender, audit *audit.Dispatcher) *RequestReview {
	return &RequestReview{repo: repo, hooks: hooks, audit: audit, now: timezone.Now}
}

func (uc *RequestReview) Execute(ctx context.Context, in RequestReviewInput) (*Result, error) {
	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	sentAt := uc.now()
	r := &models.Review{
		ClientID: client.ID,
		Platform: strings.TrimSpace(in.Platform),
		Status:   domain.StatusPending,
		SentAt:   &sentAt,
	}
	if err := uc.repo.CreateReview(ctx, r); err != nil {
		return nil, err
	}
	r.Client = client

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "review_requested",
		Entity:   "review",
		EntityID: &r.ID,
	})

	res := uc.hooks.Fire(ctx, in.Hooks, webhook.HookReview, payload(r, *client, in.CompanyName))
	return &Result{Review: r, Warning: res.Warning()}, nil
}

func payload(r *models.Review, c models.Client, company string) webhook.ReviewRequest {
	if company == "" {
		company = models.DefaultCompanyName
	}
	return webhook.ReviewRequest{
		ClientName:  c.FullName(),
		ClientEmail: c.Email,
		CompanyName: company,
		ReviewID:    r.ID.String(),
	}
}
