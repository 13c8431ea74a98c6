// Package validators holds the request validation rules shared by handlers.
package validators

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/amgrenovation/ops-dashboard/internal/domain/access"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// Register adds the custom tags to v:
//
//	webhookpath  a "/path" or an absolute http(s) URL
//	section      a known menu section id
//	role         "admin" or "user"
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("webhookpath", func(fl validator.FieldLevel) bool {
		return IsWebhookPath(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("section", func(fl validator.FieldLevel) bool {
		return access.IsKnown(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == string(access.RoleAdmin) || s == string(access.RoleUser)
	})
}

// RegisterGin installs the custom tags on gin's binding validator.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func IsWebhookPath(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "/") {
		return !strings.ContainsAny(s, " \t\n")
	}
	return IsHTTPURL(s)
}

func IsHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// WebhookConfig checks the workflow entries of an n8n_config object. Other
// keys are stored untouched.
func WebhookConfig(cfg map[string]any) error {
	for k, v := range cfg {
		s, isString := v.(string)
		switch {
		case k == webhook.BaseKey:
			if !isString || (s != "" && !IsHTTPURL(s)) {
				return httperr.ErrBusiness("invalid_webhook_base")
			}
		case isPathKey(k):
			if !isString || (s != "" && !IsWebhookPath(s)) {
				return httperr.ErrBusiness("invalid_webhook_path")
			}
		}
	}
	return nil
}

func isPathKey(k string) bool {
	for _, p := range webhook.PathKeys() {
		if p == k {
			return true
		}
	}
	return false
}
