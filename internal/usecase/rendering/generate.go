package rendering

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/imaging"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/storage"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// NoImageWarning is returned when the workflow answered without a picture.
const NoImageWarning = "Aucune image générée, image originale conservée"

// ======================================================
// INPUT / OUTPUT
// ======================================================

type GenerateInput struct {
	UserID      uuid.UUID
	ClientID    *uuid.UUID
	Image       []byte
	Prompt      string
	Hooks       *webhook.Config
	CompanyName string
}

type GenerateResult struct {
	Rendering *models.AIRendering
	Warning   string
}

// ======================================================
// USE CASE
// ======================================================

// Generate sends a site photo to the AI workflow and waits for the
// rendered picture.
type Generate struct {
	db     *gorm.DB
	store  storage.ObjectStore
	hooks  webhook.Sender
	audit  *audit.Dispatcher
	logger *zap.Logger
	now    func() time.Time
}

func NewGenerate(
	db *gorm.DB,
	store storage.ObjectStore,
	hooks webhook.Sender,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *Generate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generate{
		db:     db,
		store:  store,
		hooks:  hooks,
		audit:  audit,
		logger: logger,
		now:    timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Generate) Execute(ctx context.Context, in GenerateInput) (*GenerateResult, error) {

	// --------------------------------------------------
	// 1. Preconditions
	// --------------------------------------------------
	if _, ok := in.Hooks.URL(webhook.HookAI); !ok {
		return nil, httperr.ErrBusiness("webhook_not_configured")
	}
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return nil, httperr.ErrBusiness("prompt_required")
	}

	// --------------------------------------------------
	// 2. Normalize the photo
	// --------------------------------------------------
	img, err := imaging.Normalize(in.Image, imaging.DefaultMaxDimension)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupported) {
			return nil, httperr.ErrBusiness("unsupported_image")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. Keep the original
	// --------------------------------------------------
	key := storage.NewKey("renderings", "original"+imaging.Extension, uc.now())
	originalURL, err := uc.store.Put(ctx, key, imaging.ContentType, img)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		uc.logger.Info("rendering original not stored, no bucket configured")
	case err != nil:
		return nil, err
	}

	// --------------------------------------------------
	// 4. Synchronous workflow call
	// --------------------------------------------------
	company := in.CompanyName
	if company == "" {
		company = models.DefaultCompanyName
	}
	res := uc.hooks.Fire(ctx, in.Hooks, webhook.HookAI, webhook.RenderRequest{
		Image:       base64.StdEncoding.EncodeToString(img),
		Prompt:      prompt,
		CompanyName: company,
	})
	if !res.Sent() {
		return nil, httperr.ErrUpstream("rendering_failed", res.Err)
	}

	var out webhook.RenderResponse
	_ = res.Decode(&out)

	generated := out.Image()
	warning := ""
	if generated == "" {
		generated = originalURL
		warning = NoImageWarning
	}

	// --------------------------------------------------
	// 5. Persist
	// --------------------------------------------------
	r := &models.AIRendering{
		ClientID:          in.ClientID,
		OriginalImageURL:  originalURL,
		GeneratedImageURL: generated,
		Prompt:            prompt,
	}
	if err := uc.db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "rendering_generated",
		Entity:   "ai_rendering",
		EntityID: &r.ID,
	})

	return &GenerateResult{Rendering: r, Warning: warning}, nil
}
