package urlutil

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/law-makers/linkresolve/internal/resolver"
)

// ValidateBase checks that a base URL, once sanitized, is an absolute
// http(s) URL with a host. It returns the sanitized form.
func ValidateBase(base string) (string, error) {
	clean := resolver.Sanitize(base)
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid base URL scheme: must be http or https, got %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("invalid base URL: missing host")
	}

	return clean, nil
}

// Host returns the lowercased host of rawURL, or "" when it has none
func Host(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// SameHost reports whether dest lives on the same host as base
func SameHost(base, dest string) bool {
	h := Host(base)
	return h != "" && h == Host(dest)
}
