// AngelaMos | 2026
// metrics_test.go

package core

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.PlantCreated()
	m.DayAdvanced()
	m.DayAdvanced()
	m.PlantDied()
	m.Watered("ok")
	m.Watered("ok")
	m.Watered("invalid")
	m.WeatherDrawn("rain")

	if got := testutil.ToFloat64(m.plantsCreated); got != 1 {
		t.Errorf("plants created = %v", got)
	}
	if got := testutil.ToFloat64(m.daysAdvanced); got != 2 {
		t.Errorf("days advanced = %v", got)
	}
	if got := testutil.ToFloat64(m.deaths); got != 1 {
		t.Errorf("deaths = %v", got)
	}
	if got := testutil.ToFloat64(m.waterings.WithLabelValues("ok")); got != 2 {
		t.Errorf("waterings ok = %v", got)
	}
	if got := testutil.ToFloat64(m.weatherDraws.WithLabelValues("rain")); got != 1 {
		t.Errorf("rain draws = %v", got)
	}
}

func TestMetricsInstancesAreIndependent(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.PlantCreated()

	if got := testutil.ToFloat64(b.plantsCreated); got != 0 {
		t.Errorf("second registry saw %v creations", got)
	}
}

func TestMetricsHandlerExposition(t *testing.T) {
	m := NewMetrics()
	m.Watered("dead")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(body), `plantsim_waterings_total{result="dead"} 1`) {
		t.Errorf("exposition missing watering counter")
	}
}
