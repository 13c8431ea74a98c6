package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/testutil"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

func TestCompany_DefaultWhenEmpty(t *testing.T) {
	svc := NewService(testutil.NewDB(t), "")

	cs, err := svc.Company(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, cs.ID)
	assert.Equal(t, "AMG Rénovation", cs.DisplayName())
}

func TestSave_Upserts(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewService(db, "")

	first, err := svc.Save(ctx, &models.CompanySettings{CompanyName: "AMG", Siret: "123"})
	require.NoError(t, err)

	second, err := svc.Save(ctx, &models.CompanySettings{
		CompanyName: "AMG Rénovation Paris",
		N8NConfig:   datatypes.JSONMap{"webhook_base": "https://n8n.example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.CompanySettings{}).Count(&count)
	assert.EqualValues(t, 1, count)

	cs, err := svc.Company(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AMG Rénovation Paris", cs.CompanyName)
	assert.Equal(t, "https://n8n.example.com", cs.WebhookPaths()["webhook_base"])
}

func TestWebhookConfig(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.NewDB(t), "https://env.example.com")

	cfg, _, err := svc.WebhookConfig(ctx, nil)
	require.NoError(t, err)
	url, ok := cfg.URL(webhook.HookQuote)
	assert.True(t, ok)
	assert.Equal(t, "https://env.example.com/generer-devis", url)

	_, err = svc.Save(ctx, &models.CompanySettings{N8NConfig: datatypes.JSONMap{
		"webhook_base":  "https://company.example.com",
		"devis_webhook": "/company-devis",
	}})
	require.NoError(t, err)

	p := &models.Profile{N8NConfig: datatypes.JSONMap{"devis_webhook": "/mine"}}
	cfg, cs, err := svc.WebhookConfig(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCompanyName, cs.DisplayName())
	url, _ = cfg.URL(webhook.HookQuote)
	assert.Equal(t, "https://company.example.com/mine", url)
}

func TestWebhookConfig_NothingConfigured(t *testing.T) {
	cfg, _, err := NewService(testutil.NewDB(t), "").WebhookConfig(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}
