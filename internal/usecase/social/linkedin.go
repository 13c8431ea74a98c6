package social

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// DefaultAccountKey is the settings entry naming the LinkedIn account the
// workflow posts from.
const DefaultAccountKey = "linkedin_default_account"

type LinkedInPostInput struct {
	UserID         uuid.UUID
	Text           string
	DefaultAccount string
	Hooks          *webhook.Config
}

// PublishLinkedInPost has no local record: the workflow's answer is the
// result.
type PublishLinkedInPost struct {
	hooks webhook.Sender
	audit *audit.Dispatcher
}

func NewPublishLinkedInPost(hooks webhook.Sender, audit *audit.Dispatcher) *PublishLinkedInPost {
	return &PublishLinkedInPost{hooks: hooks, audit: audit}
}

func (uc *PublishLinkedInPost) Execute(ctx context.Context, in LinkedInPostInput) (*webhook.Ack, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, httperr.ErrBusiness("text_required")
	}

	res := uc.hooks.Fire(ctx, in.Hooks, webhook.HookLinkedIn, webhook.LinkedInPost{
		Text:  text,
		Email: strings.TrimSpace(in.DefaultAccount),
	})

	switch res.Outcome {
	case webhook.OutcomeSkipped:
		return nil, httperr.ErrBusiness("webhook_not_configured")
	case webhook.OutcomeFailed:
		return nil, httperr.ErrUpstream("linkedin_post_failed", res.Err)
	}

	var ack webhook.Ack
	_ = res.Decode(&ack)
	if ack.OK != nil && !*ack.OK {
		msg := ack.Error
		if msg == "" {
			msg = ack.Message
		}
		if msg == "" {
			msg = "workflow refused the post"
		}
		return nil, httperr.ErrUpstream("linkedin_post_failed", errors.New(msg))
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &in.UserID,
		Action: "linkedin_post_published",
		Entity: "linkedin_post",
	})

	return &ack, nil
}
