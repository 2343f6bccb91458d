// Package metadata captures client network and device metadata for audit events.
package metadata

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"leadscout/pkg/requestcontext"
)

// ClientMetadata stores the client IP and device summary in the request
// context so audit events emitted while serving the request carry them.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientIP(r.Context(), ClientIPFromRequest(r))
		ctx = requestcontext.WithClientDevice(ctx, DeviceFromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DeviceFromRequest summarizes the User-Agent header as
// "<browser> <version> on <os>", suffixed with (mobile) or (bot).
// Returns "" when the header is absent.
func DeviceFromRequest(r *http.Request) string {
	raw := r.UserAgent()
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)

	name, version := ua.Browser()
	summary := strings.TrimSpace(name + " " + version)
	if os := ua.OS(); os != "" {
		summary = strings.TrimSpace(summary + " on " + os)
	}
	switch {
	case ua.Bot():
		summary += " (bot)"
	case ua.Mobile():
		summary += " (mobile)"
	}
	return summary
}

// ClientIPFromRequest prefers the first X-Forwarded-For hop, then X-Real-IP,
// then RemoteAddr. Header values that do not parse as an IP are ignored.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := parseIP(first); ip != "" {
			return ip
		}
	}
	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

func parseIP(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return ""
	}
	return ip.String()
}
