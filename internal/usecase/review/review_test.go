package review_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/infra/repository"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/testutil"
	"github.com/amgrenovation/ops-dashboard/internal/usecase/review"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

func seedClient(t *testing.T, db *gorm.DB, first, last string) models.Client {
	t.Helper()
	c := models.Client{Firstname: first, Lastname: last, Email: first + "@example.com"}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedInvoice(t *testing.T, db *gorm.DB, clientID uuid.UUID, number string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Invoice{ClientID: clientID, InvoiceNumber: number}).Error)
}

func TestRequestReview(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	client := seedClient(t, db, "Jean", "Dupont")
	sender := &testutil.FakeSender{}

	uc := review.NewRequestReview(repository.NewReviewGormRepository(db), sender, nil)
	res, err := uc.Execute(ctx, review.RequestReviewInput{
		ClientID: client.ID,
		Platform: "google",
		Hooks:    testutil.Hooks("https://n8n.example.com"),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	assert.Equal(t, "pending", res.Review.Status)
	assert.NotNil(t, res.Review.SentAt)

	calls := sender.Calls()
	require.Len(t, calls, 1)
	p := calls[0].Payload.(webhook.ReviewRequest)
	assert.Equal(t, "Jean Dupont", p.ClientName)
	assert.Equal(t, "AMG Rénovation", p.CompanyName)
	assert.Equal(t, res.Review.ID.String(), p.ReviewID)

	_, err = uc.Execute(ctx, review.RequestReviewInput{ClientID: uuid.New()})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestResendReview(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewReviewGormRepository(db)
	client := seedClient(t, db, "Jean", "Dupont")
	hooks := testutil.Hooks("https://n8n.example.com")

	created, err := review.NewRequestReview(repo, &testutil.FakeSender{}, nil).Execute(ctx, review.RequestReviewInput{ClientID: client.ID})
	require.NoError(t, err)

	_, err = review.NewResendReview(repo, &testutil.FakeSender{Fail: true}, nil).
		Execute(ctx, uuid.New(), created.Review.ID, hooks, "")
	var up httperr.UpstreamError
	assert.ErrorAs(t, err, &up)

	skipped, err := review.NewResendReview(repo, &testutil.FakeSender{}, nil).
		Execute(ctx, uuid.New(), created.Review.ID, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "URL N8N non configurée", skipped.Warning)

	sender := &testutil.FakeSender{}
	ok, err := review.NewResendReview(repo, sender, nil).
		Execute(ctx, uuid.New(), created.Review.ID, hooks, "Acme")
	require.NoError(t, err)
	assert.Empty(t, ok.Warning)
	assert.Equal(t, "Acme", sender.Calls()[0].Payload.(webhook.ReviewRequest).CompanyName)

	_, err = review.NewResendReview(repo, sender, nil).Execute(ctx, uuid.New(), uuid.New(), hooks, "")
	assert.True(t, httperr.IsBusiness(err, "review_not_found"))
}

func TestBulkFollowUp(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewReviewGormRepository(db)

	invoiced := seedClient(t, db, "Jean", "Dupont")
	alreadyAsked := seedClient(t, db, "Marie", "Curie")
	seedClient(t, db, "Paul", "Never")
	seedInvoice(t, db, invoiced.ID, "FAC-2026-001")
	seedInvoice(t, db, invoiced.ID, "FAC-2026-002")
	seedInvoice(t, db, alreadyAsked.ID, "FAC-2026-003")
	require.NoError(t, db.Create(&models.Review{ClientID: alreadyAsked.ID, Status: "received"}).Error)

	sender := &testutil.FakeSender{}
	uc := review.NewBulkFollowUp(repo, review.NewRequestReview(repo, sender, nil), nil)

	res, err := uc.Execute(ctx, uuid.New(), testutil.Hooks("https://n8n.example.com"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Targeted)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Sent)
	assert.Empty(t, res.Warnings)

	again, err := uc.Execute(ctx, uuid.New(), nil, "")
	require.NoError(t, err)
	assert.Zero(t, again.Targeted)
}

func TestBulkFollowUp_CollectsWarnings(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewReviewGormRepository(db)
	c := seedClient(t, db, "Jean", "Dupont")
	seedInvoice(t, db, c.ID, "FAC-2026-001")

	uc := review.NewBulkFollowUp(repo, review.NewRequestReview(repo, &testutil.FakeSender{Fail: true}, nil), nil)
	res, err := uc.Execute(ctx, uuid.New(), testutil.Hooks("https://n8n.example.com"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Zero(t, res.Sent)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Jean Dupont")
}
