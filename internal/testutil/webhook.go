package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// Call is one recorded dispatch.
type Call struct {
	Hook    webhook.Hook
	Config  *webhook.Config
	Payload any
}

// FakeSender records dispatches and answers with a fixed outcome. A nil
// config is reported as skipped, like the real dispatcher.
type FakeSender struct {
	mu    sync.Mutex
	calls []Call

	Fail bool
	Body any
}

func (f *FakeSender) Fire(_ context.Context, cfg *webhook.Config, hook webhook.Hook, payload any) webhook.Result {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Hook: hook, Config: cfg, Payload: payload})
	f.mu.Unlock()

	url, ok := cfg.URL(hook)
	if !ok {
		return webhook.Result{Outcome: webhook.OutcomeSkipped}
	}
	if f.Fail {
		return webhook.Result{
			Outcome:    webhook.OutcomeFailed,
			URL:        url,
			StatusCode: 500,
			Err:        errors.New("workflow responded 500"),
		}
	}

	res := webhook.Result{Outcome: webhook.OutcomeSent, URL: url, StatusCode: 200}
	if f.Body != nil {
		res.Body, _ = json.Marshal(f.Body)
	}
	return res
}

func (f *FakeSender) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Hooks returns a configuration pointing every hook at base.
func Hooks(base string) *webhook.Config {
	return webhook.Resolve(map[string]string{webhook.BaseKey: base}, nil, "")
}
