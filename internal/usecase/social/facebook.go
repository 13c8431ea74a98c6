package social

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

const (
	PostPublished = "published"
	PostScheduled = "scheduled"
)

type FacebookPostInput struct {
	UserID      uuid.UUID
	Caption     string
	ImageURL    string
	ScheduledAt *time.Time
	Hooks       *webhook.Config
	CompanyName string
}

type FacebookPostResult struct {
	Post    *models.FacebookPost
	Warning string
}

// PublishFacebookPost stores the post then hands it to the auto-post
// workflow.
type PublishFacebookPost struct {
	db    *gorm.DB
	hooks webhook.Sender
	audit *audit.Dispatcher
}

func NewPublishFacebookPost(db *gorm.DB, hooks webhook.Sender, audit *audit.Dispatcher) *PublishFacebookPost {
	return &PublishFacebookPost{db: db, hooks: hooks, audit: audit}
}

func (uc *PublishFacebookPost) Execute(ctx context.Context, in FacebookPostInput) (*FacebookPostResult, error) {
	caption := strings.TrimSpace(in.Caption)
	if caption == "" {
		return nil, httperr.ErrBusiness("caption_required")
	}

	status := PostPublished
	if in.ScheduledAt != nil {
		status = PostScheduled
	}

	post := &models.FacebookPost{
		Caption:     caption,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		ScheduledAt: in.ScheduledAt,
		Status:      status,
	}
	if err := uc.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "facebook_post_created",
		Entity:   "facebook_post",
		EntityID: &post.ID,
	})

	company := in.CompanyName
	if company == "" {
		company = models.DefaultCompanyName
	}
	res := uc.hooks.Fire(ctx, in.Hooks, webhook.HookFacebookPost, webhook.SocialPost{
		Caption:     post.Caption,
		ImageURL:    post.ImageURL,
		ScheduledAt: post.ScheduledAt,
		CompanyName: company,
	})
	return &FacebookPostResult{Post: post, Warning: res.Warning()}, nil
}
