package handlers

import (
	"net/http"
)

// Home handles GET / with a plain-text liveness banner.
func Home() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Backend Running 🚀"))
	})
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status string         `json:"status"`
	Checks map[string]any `json:"checks,omitempty"`
}

// Health handles GET /health. With purely in-process storage there is no
// dependency that can fail, so the check reports store sizes for operators.
func Health(userCount, eventCount func() int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status: "healthy",
			Checks: map[string]any{
				"users":  userCount(),
				"events": eventCount(),
			},
		})
	})
}
