package bridge

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"x68kbd/exec"
	"x68kbd/keytable"
)

// Metrics counts translated events and hook runs. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry
	events   *prometheus.CounterVec
	hooks    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "x68kbd_events_total",
			Help: "Key events seen, by translation status.",
		}, []string{"status"}),
		hooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "x68kbd_hook_runs_total",
			Help: "Unmapped-key hook runs, by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.events, m.hooks)

	// Expose every label up front so a quiet bridge still reports zeros.
	for _, st := range []keytable.Status{keytable.Mapped, keytable.Unmapped, keytable.OutOfRange} {
		m.events.WithLabelValues(st.String())
	}
	for _, res := range []string{"ok", "failed", "timeout", "skipped"} {
		m.hooks.WithLabelValues(res)
	}
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) event(st keytable.Status) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(st.String()).Inc()
}

func (m *Metrics) hook(r *exec.Result) {
	if m == nil {
		return
	}
	res := "ok"
	switch {
	case r.TimedOut:
		res = "timeout"
	case r.Status != 0:
		res = "failed"
	}
	m.hooks.WithLabelValues(res).Inc()
}

func (m *Metrics) hookSkipped() {
	if m == nil {
		return
	}
	m.hooks.WithLabelValues("skipped").Inc()
}
