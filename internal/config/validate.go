// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the loaded configuration and fills parsed fields.
// Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.ILS.validate(); err != nil {
		return fmt.Errorf("ils: %w", err)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache: ttl must be > 0 (got %v)", c.Cache.TTL)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server: port out of range (got %d)", c.Server.Port)
	}

	later, err := ParseLaterLibraries(c.Display.LaterLibrariesRaw)
	if err != nil {
		return fmt.Errorf("display: later_libraries: %w", err)
	}
	c.Display.LaterLibraries = later

	return nil
}

func (i *ILSConfig) validate() error {
	u, err := url.Parse(i.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https (got %q)", i.BaseURL)
	}
	if i.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", i.Timeout)
	}
	if i.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0 (got %v)", i.RateLimit)
	}
	return nil
}

// ParseLaterLibraries parses "Library=bucket" pairs separated by commas.
// A pair without "=" puts the library in a bucket of its own name.
// An empty string returns a nil map.
func ParseLaterLibraries(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	out := make(map[string]string)
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, bucket, found := strings.Cut(p, "=")
		name, bucket = strings.TrimSpace(name), strings.TrimSpace(bucket)
		if name == "" {
			return nil, fmt.Errorf("missing library name in %q", p)
		}
		if !found || bucket == "" {
			bucket = strings.ToLower(name)
		}
		out[name] = bucket
	}

	return out, nil
}
