// Package metrics exposes widget activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives widget activity. Widgets call it on the UI thread, so
// implementations must be cheap.
type Recorder interface {
	// Redraw counts one invocation of a widget's drawing strategy.
	Redraw(widget string)
	// Tick counts one auto-advance timer tick.
	Tick(widget string)
	// Position reports the normalised position (0..1) of a widget.
	Position(widget string, fraction float64)
	// AutoAdvance reports whether a widget's auto-advance timer is running.
	AutoAdvance(widget string, running bool)
}

// Nop is a Recorder that discards everything.
type Nop struct{}

// Verify interface compliance.
var (
	_ Recorder = Nop{}
	_ Recorder = (*Metrics)(nil)
)

func (Nop) Redraw(string) {}
func (Nop) Tick(string) {}
func (Nop) Position(string, float64) {}
func (Nop) AutoAdvance(string, bool) {}

// Metrics is a Prometheus backed Recorder with its own registry, so several
// instances (tests, embedded toolkits) never collide on registration.
type Metrics struct {
	handler http.Handler

	redraws  *prometheus.CounterVec
	ticks    *prometheus.CounterVec
	position *prometheus.GaugeVec
	running  *prometheus.GaugeVec
}

// NewMetrics creates and registers the widget collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		redraws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gwinbar",
			Name:      "redraws_total",
			Help:      "Number of drawing strategy invocations.",
		}, []string{"widget"}),
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gwinbar",
			Name:      "autoadvance_ticks_total",
			Help:      "Number of auto-advance timer ticks delivered.",
		}, []string{"widget"}),
		position: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gwinbar",
			Name:      "position_ratio",
			Help:      "Current position normalised to the widget range.",
		}, []string{"widget"}),
		running: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gwinbar",
			Name:      "autoadvance_running",
			Help:      "1 while the widget's auto-advance timer is running.",
		}, []string{"widget"}),
	}
	reg.MustRegister(
		m.redraws, m.ticks, m.position, m.running,
		collectors.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// Redraw counts a redraw.
func (m *Metrics) Redraw(widget string) { m.redraws.WithLabelValues(widget).Inc() }

// Tick counts an auto-advance tick.
func (m *Metrics) Tick(widget string) { m.ticks.WithLabelValues(widget).Inc() }

// Position records the normalised position.
func (m *Metrics) Position(widget string, fraction float64) {
	m.position.WithLabelValues(widget).Set(fraction)
}

// AutoAdvance records the timer state.
func (m *Metrics) AutoAdvance(widget string, running bool) {
	v := 0.0
	if running {
		v = 1
	}
	m.running.WithLabelValues(widget).Set(v)
}

// Handler returns the HTTP handler serving the metrics.
func (m *Metrics) Handler() http.Handler { return m.handler }
