package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMiddlewareRecordsRequests(t *testing.T) {
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/teapot", "418"))

	req := httptest.NewRequest(http.MethodGet, "/teapot", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/teapot", "418"))
	if after != before+1 {
		t.Fatalf("expected counter to increase by 1, got %f -> %f", before, after)
	}
}

func TestHTTPMiddlewareDefaultsStatusOK(t *testing.T) {
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Handler writes nothing; status should default to 200.
	}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/empty", "200"))

	req := httptest.NewRequest(http.MethodGet, "/empty", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/empty", "200"))
	if after != before+1 {
		t.Fatalf("expected counter to increase by 1, got %f -> %f", before, after)
	}
}
