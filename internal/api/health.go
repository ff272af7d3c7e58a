package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler handles the GET /healthz liveness probe. Returns 200
// immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles the GET /healthz/ready readiness probe. Checks the
// authentication service (and Redis, when it backs the token store) before
// declaring the portal ready.
type ReadinessHandler struct {
	authBaseURL string
	httpClient  *http.Client
	redis       *redis.Client // nil when the file token store is in use
}

func NewReadinessHandler(authBaseURL string, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{
		authBaseURL: authBaseURL,
		httpClient:  &http.Client{Timeout: 3 * time.Second},
		redis:       rdb,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// --- Authentication service reachability ---
	// Any HTTP response counts as reachable; only transport failure is down.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.authBaseURL+"/api/auth/me", nil)
	if err == nil {
		var resp *http.Response
		resp, err = h.httpClient.Do(req)
		if err == nil {
			resp.Body.Close()
		}
	}
	if err != nil {
		deps["auth_service"] = dependencyStatus{Status: "down", Error: err.Error()}
		healthy = false
	} else {
		deps["auth_service"] = dependencyStatus{Status: "up"}
	}

	// --- Redis ping (token store backend, optional) ---
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			deps["redis"] = dependencyStatus{Status: "down", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "up"}
		}
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	return c.JSON(status, readinessResponse{Status: overall, Dependencies: deps})
}
