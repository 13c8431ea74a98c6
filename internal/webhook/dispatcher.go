package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

const maxResponseBody = 1 << 20

// Result describes what happened to one dispatch.
type Result struct {
	Outcome    Outcome
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (r Result) Sent() bool {
	return r.Outcome == OutcomeSent
}

// Warning is the message shown next to a successful local write, empty when
// the call went through.
func (r Result) Warning() string {
	switch r.Outcome {
	case OutcomeSkipped:
		return "URL N8N non configurée"
	case OutcomeFailed:
		return fmt.Sprintf("Enregistré localement, envoi au workflow en échec: %v", r.Err)
	}
	return ""
}

// Sender is implemented by Dispatcher; use cases depend on it.
type Sender interface {
	Fire(ctx context.Context, cfg *Config, hook Hook, payload any) Result
}

type Dispatcher struct {
	client *http.Client
	logger *zap.Logger
}

func NewDispatcher(timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		client: &http.Client{Timeout: timeout},
		logger: logger.Named("webhook"),
	}
}

// Fire performs one POST of payload as JSON. It never retries.
func (d *Dispatcher) Fire(ctx context.Context, cfg *Config, hook Hook, payload any) Result {
	url, ok := cfg.URL(hook)
	if !ok {
		d.logger.Info("webhook skipped, no base url", zap.String("hook", hook.Name))
		return Result{Outcome: OutcomeSkipped}
	}

	res := d.post(ctx, url, payload)
	if res.Outcome == OutcomeFailed {
		d.logger.Warn("webhook failed",
			zap.String("hook", hook.Name),
			zap.String("url", url),
			zap.Int("status", res.StatusCode),
			zap.Error(res.Err),
		)
	} else {
		d.logger.Debug("webhook sent", zap.String("hook", hook.Name), zap.Int("status", res.StatusCode))
	}
	return res
}

func (d *Dispatcher) post(ctx context.Context, url string, payload any) Result {
	res := Result{Outcome: OutcomeFailed, URL: url}

	body, err := json.Marshal(payload)
	if err != nil {
		res.Err = fmt.Errorf("encode payload: %w", err)
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		res.Err = fmt.Errorf("build request: %w", err)
		return res
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode
	res.Body, _ = io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res.Err = fmt.Errorf("workflow responded %d", resp.StatusCode)
		return res
	}
	res.Outcome = OutcomeSent
	return res
}

// Decode unmarshals the response body of a sent call into v.
func (r Result) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return io.EOF
	}
	return json.Unmarshal(r.Body, v)
}
