package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func readiness(t *testing.T, probes ...probe) (int, readinessResponse) {
	t.Helper()
	c, rec := jsonContext(http.MethodGet, "/health/ready", "")
	if err := (&HealthDependenciesHandler{probes: probes}).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func probeOK(context.Context) error { return nil }

func probeFail(context.Context) error { return errors.New("connection refused") }

func TestReadiness_AllHealthy(t *testing.T) {
	code, resp := readiness(t,
		probe{name: "mongodb", gating: true, check: probeOK},
		probe{name: "redis", check: probeOK},
	)
	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected ready, got %d %+v", code, resp)
	}
	if resp.Dependencies["redis"].Status != "ok" {
		t.Fatalf("unexpected redis status: %+v", resp.Dependencies["redis"])
	}
}

func TestReadiness_RedisDisabled(t *testing.T) {
	code, resp := readiness(t, probe{name: "mongodb", gating: true, check: probeOK})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Dependencies["redis"].Status != "disabled" {
		t.Fatalf("expected redis disabled, got %+v", resp.Dependencies["redis"])
	}
}

func TestReadiness_RedisDownDoesNotGate(t *testing.T) {
	code, resp := readiness(t,
		probe{name: "mongodb", gating: true, check: probeOK},
		probe{name: "redis", check: probeFail},
	)
	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("cache outage must not fail readiness, got %d %+v", code, resp)
	}
	if resp.Dependencies["redis"].Status != "unhealthy" || resp.Dependencies["redis"].Error == "" {
		t.Fatalf("expected redis reported unhealthy, got %+v", resp.Dependencies["redis"])
	}
}

func TestReadiness_MongoDownGates(t *testing.T) {
	code, resp := readiness(t, probe{name: "mongodb", gating: true, check: probeFail})
	if code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("expected 503 degraded, got %d %+v", code, resp)
	}
}
