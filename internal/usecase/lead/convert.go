package lead

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/amgrenovation/ops-dashboard/internal/domain/lead"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/usecase/billing"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// ConvertLead drafts a quote from a marketplace lead and marks the lead
// converted.
type ConvertLead struct {
	repo   domain.Repository
	quotes *billing.CreateQuote
	logger *zap.Logger
}

func NewConvertLead(repo domain.Repository, quotes *billing.CreateQuote, logger *zap.Logger) *ConvertLead {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConvertLead{repo: repo, quotes: quotes, logger: logger}
}

func (uc *ConvertLead) Execute(
	ctx context.Context,
	userID, leadID uuid.UUID,
	hooks *webhook.Config,
) (*billing.QuoteResult, error) {

	lead, err := uc.repo.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Status == domain.LeadConverted {
		return nil, httperr.ErrBusiness("lead_already_converted")
	}

	res, err := uc.quotes.Execute(ctx, billing.CreateQuoteInput{
		UserID: userID,
		Client: billing.ClientRef{Name: lead.ClientName},
		Items:  []models.LineItem{QuoteItem(lead)},
		Hooks:  hooks,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateLeadStatus(ctx, lead.ID, domain.LeadConverted); err != nil {
		uc.logger.Warn("lead not marked converted", zap.String("lead_id", lead.ID.String()), zap.Error(err))
	}
	return res, nil
}

// QuoteItem is the single line drafted from a lead, priced at the low end of
// the marketplace estimate.
func QuoteItem(l *models.AllovoisinLead) models.LineItem {
	price := 0.0
	if l.EstimatedPriceMin != nil {
		price = *l.EstimatedPriceMin
	}
	return models.LineItem{
		Description: fmt.Sprintf("Travaux: %s\nLieu: %s", l.ProjectType, l.City),
		Quantity:    1,
		UnitPrice:   price,
	}
}
