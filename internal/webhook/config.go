package webhook

import "strings"

// Config is the resolved endpoint configuration for one caller. A nil
// *Config means no URL is configured and every dispatch is skipped.
type Config struct {
	BaseURL string
	Paths   map[string]string
}

// Resolve merges company settings and the caller's profile overrides.
// The base URL comes from the company settings, else fallbackBase. Per-path
// precedence is user override, then company path, then the hook default.
func Resolve(company, user map[string]string, fallbackBase string) *Config {
	base := strings.TrimSpace(company[BaseKey])
	if base == "" {
		base = strings.TrimSpace(fallbackBase)
	}
	base = strings.TrimRight(base, "/")
	if base == "" {
		return nil
	}

	paths := make(map[string]string)
	for _, src := range []map[string]string{company, user} {
		for k, v := range src {
			if k == BaseKey {
				continue
			}
			if v = strings.TrimSpace(v); v != "" {
				paths[k] = v
			}
		}
	}
	return &Config{BaseURL: base, Paths: paths}
}

// URL returns the full endpoint for h, or false when c is nil.
func (c *Config) URL(h Hook) (string, bool) {
	if c == nil || c.BaseURL == "" {
		return "", false
	}
	path := h.DefaultPath
	for _, k := range h.Keys {
		if p, ok := c.Paths[k]; ok && p != "" {
			path = p
			break
		}
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, true
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path, true
}
