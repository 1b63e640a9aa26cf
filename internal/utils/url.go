package utils

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// NormalizeServerURL validates an http(s) base URL and makes sure it ends in a slash,
// so relative API paths resolve under any path prefix (e.g. /galaxy/).
func NormalizeServerURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("server url is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("server url %q: %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("server url %q: scheme must be http or https", raw)
	}

	if u.Host == "" {
		return "", fmt.Errorf("server url %q: missing host", raw)
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return u.String(), nil
}

// IsLoopbackURL reports whether the URL points at this machine,
// either by the name localhost or by a loopback IP.
func IsLoopbackURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}

	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
