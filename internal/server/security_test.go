package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	const apiKey = "owner-secret"

	tests := []struct {
		name           string
		configuredKey  string
		providedKey    string
		expectedStatus int
	}{
		{"valid key", apiKey, apiKey, http.StatusOK},
		{"wrong key", apiKey, "nope", http.StatusUnauthorized},
		{"missing key", apiKey, "", http.StatusUnauthorized},
		{"unset key never authenticates", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(tt.configuredKey, nil, NewSuspiciousActivityDetector())(okHandler())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/raffle/admin/draw", nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_RecordsFailures(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	h := AuthMiddleware("key", nil, detector)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 3, detector.FailedAuthCount("10.0.0.7"))
	assert.Zero(t, detector.FailedAuthCount("10.0.0.8"))
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get("Referrer-Policy"))
}

func TestSecurityLoggingMiddleware_BlocksAfterWindowBudget(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	h := SecurityLoggingMiddleware(nil, detector)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/raffle", nil)
	req.RemoteAddr = "192.168.1.100:1234"

	for i := 0; i < MaxRequestsPerWindow; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestSuspiciousActivityDetector_WindowReset(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	detector := NewSuspiciousActivityDetector()
	detector.now = func() time.Time { return now }
	detector.windowStart = now

	for i := 0; i < MaxRequestsPerWindow; i++ {
		detector.RecordRequest("1.2.3.4")
	}
	assert.False(t, detector.RecordRequest("1.2.3.4"))

	now = now.Add(DetectorWindow + time.Second)
	assert.True(t, detector.RecordRequest("1.2.3.4"))
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []string
		expected   string
	}{
		{"direct peer", "203.0.113.5:4000", "", nil, "203.0.113.5"},
		{"untrusted forwarded header ignored", "203.0.113.5:4000", "1.1.1.1", nil, "203.0.113.5"},
		{"trusted proxy uses rightmost hop", "10.0.0.1:80", "9.9.9.9, 8.8.8.8", []string{"10.0.0.1"}, "8.8.8.8"},
		{"trusted proxy without header", "10.0.0.1:80", "", []string{"10.0.0.1"}, "10.0.0.1"},
		{"no port", "203.0.113.9", "", nil, "203.0.113.9"},
		{"trusted proxy by cidr", "172.18.0.4:80", "198.51.100.2", []string{"172.18.0.0/16"}, "198.51.100.2"},
		{"peer outside cidr", "172.19.0.4:80", "198.51.100.2", []string{"172.18.0.0/16"}, "172.19.0.4"},
		{"malformed cidr ignored", "172.18.0.4:80", "198.51.100.2", []string{"172.18.0.0/99"}, "172.18.0.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.expected, extractIP(req, tt.trusted))
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	h := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tooLarge *http.MaxBytesError
		if _, err := io.ReadAll(r.Body); errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789abcdef"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
