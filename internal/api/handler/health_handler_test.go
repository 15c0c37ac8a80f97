package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler("test", "1.2.3", nil)
	h.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	c, rec := newContext(http.MethodGet, "/health", nil)
	if err := h.Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp livenessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "ok" || resp.Environment != "test" || resp.Version != "1.2.3" || resp.Timestamp.Year() != 2026 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		probes map[string]Probe
		code   int
		status string
	}{
		{"all up", map[string]Probe{"database": ok, "redis": ok}, http.StatusOK, "ok"},
		{"no probes", nil, http.StatusOK, "ok"},
		{"redis down", map[string]Probe{"database": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("test", "dev", tt.probes)
			c, rec := newContext(http.MethodGet, "/health/ready", nil)
			if err := h.Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tt.status || len(resp.Dependencies) != len(tt.probes) {
				t.Fatalf("unexpected response: %+v", resp)
			}
			if tt.status == "degraded" && resp.Dependencies["redis"].Error != "connection refused" {
				t.Fatalf("expected redis error detail, got %+v", resp.Dependencies["redis"])
			}
		})
	}
}
