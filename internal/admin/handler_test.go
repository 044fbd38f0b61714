// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func passthrough(next http.Handler) http.Handler { return next }

func newRouter(cfg HandlerConfig) chi.Router {
	r := chi.NewRouter()
	NewHandler(cfg).RegisterRoutes(r, passthrough, passthrough)
	return r
}

func TestPlantStatsFillsEveryStage(t *testing.T) {
	r := newRouter(HandlerConfig{
		PlantStats: func(context.Context) (map[string]int, error) {
			return map[string]int{"seed": 2, "adult": 1, "dead": 3}, nil
		},
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats/plants", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Data PlantStats `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	if body.Data.Total != 6 || body.Data.Alive != 3 {
		t.Errorf("totals = %+v", body.Data)
	}
	if len(body.Data.ByStage) != 5 || body.Data.ByStage["growing"] != 0 {
		t.Errorf("by_stage = %v", body.Data.ByStage)
	}
}

func TestSystemStatsReportsUnhealthyDependencies(t *testing.T) {
	r := newRouter(HandlerConfig{
		DBPing:    func(context.Context) error { return nil },
		RedisPing: func(context.Context) error { return errors.New("down") },
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Data SystemStatsResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	if !body.Data.Database.Healthy || body.Data.Redis.Healthy {
		t.Errorf("health = db %v redis %v", body.Data.Database.Healthy, body.Data.Redis.Healthy)
	}
	if body.Data.Plants != nil {
		t.Errorf("plants section should be omitted without a source")
	}
	if body.Data.Runtime.GoVersion == "" {
		t.Error("runtime stats missing")
	}
}

func TestPlantStatsError(t *testing.T) {
	r := newRouter(HandlerConfig{
		PlantStats: func(context.Context) (map[string]int, error) {
			return nil, errors.New("db gone")
		},
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
