package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/amgrenovation/ops-dashboard/internal/domain/review"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

type FollowUpResult struct {
	Targeted int      `json:"targeted"`
	Created  int      `json:"created"`
	Sent     int      `json:"sent"`
	Warnings []string `json:"warnings,omitempty"`
}

// BulkFollowUp requests a review from every invoiced client who was never
// asked. One failing client does not stop the others.
type BulkFollowUp struct {
	repo    domain.Repository
	request *RequestReview
	logger  *zap.Logger
}

func NewBulkFollowUp(repo domain.Repository, request *RequestReview, logger *zap.Logger) *BulkFollowUp {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkFollowUp{repo: repo, request: request, logger: logger}
}

func (uc *BulkFollowUp) Execute(
	ctx context.Context,
	userID uuid.UUID,
	hooks *webhook.Config,
	companyName string,
) (*FollowUpResult, error) {

	clients, err := uc.repo.ClientsAwaitingReview(ctx)
	if err != nil {
		return nil, err
	}

	out := &FollowUpResult{Targeted: len(clients)}
	for _, c := range clients {
		res, err := uc.request.Execute(ctx, RequestReviewInput{
			UserID:      userID,
			ClientID:    c.ID,
			Hooks:       hooks,
			CompanyName: companyName,
		})
		if err != nil {
			uc.logger.Warn("review follow-up failed", zap.String("client_id", c.ID.String()), zap.Error(err))
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %v", c.FullName(), err))
			continue
		}

		out.Created++
		if res.Warning == "" {
			out.Sent++
			continue
		}
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %s", c.FullName(), res.Warning))
	}
	return out, nil
}
