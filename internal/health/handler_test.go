// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func readiness(t *testing.T, h *Handler) (int, ReadinessResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var body ReadinessResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return rec.Code, body
}

func TestReadinessAllHealthy(t *testing.T) {
	h := NewHandler(
		Dependency{Name: "database", Checker: pinger{}},
		Dependency{Name: "redis", Checker: pinger{}},
	)

	code, body := readiness(t, h)
	if code != http.StatusOK || body.Status != "ok" {
		t.Fatalf("got %d %q", code, body.Status)
	}
	if len(body.Checks) != 2 || body.Checks[0].Name != "database" {
		t.Errorf("checks = %+v", body.Checks)
	}
}

func TestReadinessDegraded(t *testing.T) {
	h := NewHandler(
		Dependency{Name: "database", Checker: pinger{}},
		Dependency{Name: "redis", Checker: pinger{err: errors.New("refused")}},
		Dependency{Name: "cache"},
	)

	code, body := readiness(t, h)
	if code != http.StatusServiceUnavailable || body.Status != "degraded" {
		t.Fatalf("got %d %q", code, body.Status)
	}
	if body.Checks[1].Healthy || body.Checks[1].Message != "ping failed" {
		t.Errorf("redis check = %+v", body.Checks[1])
	}
	if body.Checks[2].Healthy {
		t.Error("unconfigured checker reported healthy")
	}
}

func TestShutdownFlipsProbes(t *testing.T) {
	h := NewHandler()
	h.SetShutdown(true)

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("liveness = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness = %d", rec.Code)
	}
}

func TestNotReady(t *testing.T) {
	h := NewHandler()
	h.SetReady(false)

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness = %d", rec.Code)
	}
}
