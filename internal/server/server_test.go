// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carterperez-dev/plantsim/internal/config"
)

type recordingNotifier struct {
	shutdown bool
}

func (n *recordingNotifier) SetShutdown(shutdown bool) {
	n.shutdown = shutdown
}

func TestRouterRecoversPanics(t *testing.T) {
	srv := New(Config{ServerConfig: config.ServerConfig{Host: "127.0.0.1"}})
	srv.Router().Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestShutdownNotifiesHealth(t *testing.T) {
	notifier := &recordingNotifier{}
	srv := New(Config{
		ServerConfig:  config.ServerConfig{Host: "127.0.0.1"},
		HealthHandler: notifier,
	})

	if err := srv.Shutdown(context.Background(), 0); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !notifier.shutdown {
		t.Fatal("health handler was not told about shutdown")
	}
}
