package billing

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/amgrenovation/ops-dashboard/internal/domain/billing"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
)

// ClientRef points at an existing client or describes one to create.
type ClientRef struct {
	ID      *uuid.UUID
	Name    string
	Email   string
	Phone   string
	Address string
}

// SplitName turns "Prénom Nom de famille" into its first token and the rest.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// resolveClient loads ref.ID or inserts a new client. The insert is not
// undone if a later step fails.
func resolveClient(ctx context.Context, repo domain.Repository, ref ClientRef) (*models.Client, bool, error) {
	if ref.ID != nil && *ref.ID != uuid.Nil {
		c, err := repo.GetClient(ctx, *ref.ID)
		return c, false, err
	}

	first, last := SplitName(ref.Name)
	if first == "" {
		return nil, false, httperr.ErrBusiness("client_required")
	}

	c := &models.Client{
		Firstname: first,
		Lastname:  last,
		Email:     strings.TrimSpace(ref.Email),
		Phone:     strings.TrimSpace(ref.Phone),
		Address:   strings.TrimSpace(ref.Address),
	}
	if err := repo.CreateClient(ctx, c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func validateItems(items []models.LineItem) error {
	if len(items) == 0 {
		return httperr.ErrBusiness("items_required")
	}
	for _, it := range items {
		if strings.TrimSpace(it.Description) == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			return httperr.ErrBusiness("invalid_line_item")
		}
	}
	return nil
}
