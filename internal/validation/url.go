package validation

import (
	"errors"
	"net/url"
	"strings"
)

const maxURLLength = 2048

var (
	ErrURLEmpty        = errors.New("url is required")
	ErrURLTooLong      = errors.New("url must be at most 2048 characters")
	ErrURLScheme       = errors.New("url scheme must be http or https")
	ErrURLHost         = errors.New("url must have a host")
	ErrURLSelfRedirect = errors.New("url points back at this service")
)

// ValidateURL checks that raw is an absolute http(s) URL that does not redirect to selfHost.
// An empty selfHost disables the loop check.
func ValidateURL(raw, selfHost string) error {
	if raw == "" {
		return ErrURLEmpty
	}
	if len(raw) > maxURLLength {
		return ErrURLTooLong
	}

	u, err := url.Parse(raw)
	if err != nil {
		return err
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return ErrURLScheme
	}
	if u.Hostname() == "" {
		return ErrURLHost
	}

	if selfHost != "" && strings.EqualFold(u.Host, selfHost) {
		return ErrURLSelfRedirect
	}

	return nil
}

// HostOf returns the host[:port] of baseURL, or "" if it cannot be parsed.
func HostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Host
}
