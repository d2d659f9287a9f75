package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{
			name:       "normalizes order path",
			method:     http.MethodGet,
			path:       "/api/v1/orders/ABC123",
			statusCode: http.StatusTeapot,
		},
		{
			name:       "keeps non-matching path as-is",
			method:     http.MethodPost,
			path:       "/health",
			statusCode: http.StatusCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpRequestsTotal.Reset()
			httpRequestDuration.Reset()
			httpRequestsInFlight.Set(0)

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(tc.statusCode)
			})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()

			Metrics(next).ServeHTTP(rr, req)

			if !handlerCalled {
				t.Fatalf("next handler was not invoked")
			}

			if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
				t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
			}

			normalized := normalizePath(tc.path)
			counter := httpRequestsTotal.WithLabelValues(tc.method, normalized, strconv.Itoa(tc.statusCode))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected counter to be 1, got %v", got)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "count sheet path without suffix",
			input:    "/api/v1/counts/ABC123",
			expected: "/api/v1/counts/:id",
		},
		{
			name:     "count sheet action path",
			input:    "/api/v1/counts/ABC123/post",
			expected: "/api/v1/counts/:id/post",
		},
		{
			name:     "order payments path",
			input:    "/api/v1/orders/XYZ789/payments",
			expected: "/api/v1/orders/:id/payments",
		},
		{
			name:     "session summary path",
			input:    "/api/v1/sessions/S1/summary",
			expected: "/api/v1/sessions/:id/summary",
		},
		{
			name:     "movement correlation path",
			input:    "/api/v1/movements/correlation/CORR1",
			expected: "/api/v1/movements/correlation/:id",
		},
		{
			name:     "balance key path",
			input:    "/api/v1/balances/item-1/loc-1",
			expected: "/api/v1/balances/:item/:location",
		},
		{
			name:     "balance reorder point path",
			input:    "/api/v1/balances/item-1/loc-1/reorder-point",
			expected: "/api/v1/balances/:item/:location/reorder-point",
		},
		{
			name:     "balances list path",
			input:    "/api/v1/balances",
			expected: "/api/v1/balances",
		},
		{
			name:     "non-matching path",
			input:    "/api/v1/health",
			expected: "/api/v1/health",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePath(tc.input); got != tc.expected {
				t.Fatalf("normalizePath(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
