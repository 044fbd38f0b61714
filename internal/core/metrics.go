// AngelaMos | 2026
// metrics.go

package core

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "plantsim"

// Metrics holds the simulation counters on a private registry so tests can
// build as many instances as they like.
type Metrics struct {
	registry      *prometheus.Registry
	plantsCreated prometheus.Counter
	daysAdvanced  prometheus.Counter
	deaths        prometheus.Counter
	waterings     *prometheus.CounterVec
	weatherDraws  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		plantsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "plants_created_total",
			Help:      "Plants sown.",
		}),
		daysAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "days_advanced_total",
			Help:      "Simulated days completed across all plants.",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "plant_deaths_total",
			Help:      "Plants that reached the dead stage.",
		}),
		waterings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "waterings_total",
			Help:      "Watering attempts by result.",
		}, []string{"result"}),
		weatherDraws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "weather_draws_total",
			Help:      "Weather conditions drawn by condition.",
		}, []string{"condition"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.plantsCreated,
		m.daysAdvanced,
		m.deaths,
		m.waterings,
		m.weatherDraws,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) PlantCreated() {
	m.plantsCreated.Inc()
}

func (m *Metrics) DayAdvanced() {
	m.daysAdvanced.Inc()
}

func (m *Metrics) PlantDied() {
	m.deaths.Inc()
}

func (m *Metrics) Watered(result string) {
	m.waterings.WithLabelValues(result).Inc()
}

func (m *Metrics) WeatherDrawn(condition string) {
	m.weatherDraws.WithLabelValues(condition).Inc()
}
