package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 3 * time.Second

// HealthHandler answers GET /health while the process is up.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type probe struct {
	name string
	// gating probes turn the service unready when they fail.
	gating bool
	check  func(ctx context.Context) error
}

// HealthDependenciesHandler answers GET /health/ready. Only MongoDB gates
// readiness; Redis backs the username cache and is reported for visibility.
type HealthDependenciesHandler struct {
	probes []probe
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	probes := []probe{{
		name:   "mongodb",
		gating: true,
		check: func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		},
	}}
	if rdb != nil {
		probes = append(probes, probe{
			name:  "redis",
			check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	return &HealthDependenciesHandler{probes: probes}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	resp := readinessResponse{Status: "ok", Dependencies: map[string]dependencyStatus{"redis": {Status: "disabled"}}}
	code := http.StatusOK
	for _, p := range h.probes {
		if err := p.check(ctx); err != nil {
			resp.Dependencies[p.name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			if p.gating {
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
			continue
		}
		resp.Dependencies[p.name] = dependencyStatus{Status: "ok"}
	}
	return c.JSON(code, resp)
}
