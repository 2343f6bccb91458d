package metadata

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"leadscout/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"first forwarded hop", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.1.1.1:80", "10.0.0.1"},
		{"real ip header", map[string]string{"X-Real-IP": " 10.0.0.9 "}, "1.1.1.1:80", "10.0.0.9"},
		{"ipv4 remote addr", nil, "192.168.1.4:5555", "192.168.1.4"},
		{"ipv6 remote addr", nil, "[::1]:5555", "::1"},
		{"garbage forwarded header falls through", map[string]string{"X-Forwarded-For": "not-an-ip"}, "192.168.1.4:5555", "192.168.1.4"},
		{"remote addr without port", nil, "192.168.1.4", "192.168.1.4"},
		{"empty remote addr", nil, "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(req))
		})
	}
}

func TestClientMetadata_SetsContext(t *testing.T) {
	var got string
	h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestcontext.ClientIP(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:443"
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.7", got)
}

func TestDeviceFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, DeviceFromRequest(req))

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	desktop := DeviceFromRequest(req)
	assert.True(t, strings.HasPrefix(desktop, "Chrome 120.0.0.0 on "), desktop)
	assert.NotContains(t, desktop, "(mobile)")

	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	assert.True(t, strings.HasSuffix(DeviceFromRequest(req), "(bot)"))
}

func TestClientMetadata_SetsDevice(t *testing.T) {
	var got string
	h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestcontext.ClientDevice(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, got, "Chrome")
}
