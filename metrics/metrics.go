// Package metrics holds the Prometheus metrics of fintrack.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels.
const (
	OK      = "ok"
	Failed  = "failed"
	Skipped = "skipped"
)

// Registry holds all the fintrack metrics.
//
// A nil *Registry is valid and records nothing.
type Registry struct {
	Trades   *prometheus.CounterVec
	Saves    *prometheus.CounterVec
	Loads    *prometheus.CounterVec
	Advisory *prometheus.CounterVec
	NetWorth prometheus.Gauge
}

// NewRegistry creates the metrics and registers them into reg when not nil.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		Trades: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_trades_total",
				Help: "Trades executed, by action and result.",
			},
			[]string{"action", "result"},
		),
		Saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_saves_total",
				Help: "Bundle writes to the store, by result.",
			},
			[]string{"result"},
		),
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_loads_total",
				Help: "Bundle reads from the store, by result.",
			},
			[]string{"result"},
		),
		Advisory: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_advisory_requests_total",
				Help: "Requests to the text generation service, by operation and result.",
			},
			[]string{"op", "result"},
		),
		NetWorth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "fintrack_net_worth",
				Help: "Net worth of the logged in user after the last change.",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(r.Trades, r.Saves, r.Loads, r.Advisory, r.NetWorth)
	}
	return r
}

// Trade counts a trade.
func (r *Registry) Trade(action, result string) {
	if r == nil {
		return
	}
	r.Trades.WithLabelValues(action, result).Inc()
}

// Save counts a store write.
func (r *Registry) Save(result string) {
	if r == nil {
		return
	}
	r.Saves.WithLabelValues(result).Inc()
}

// Load counts a store read.
func (r *Registry) Load(result string) {
	if r == nil {
		return
	}
	r.Loads.WithLabelValues(result).Inc()
}

// Advise counts a request to the text generation service.
func (r *Registry) Advise(op, result string) {
	if r == nil {
		return
	}
	r.Advisory.WithLabelValues(op, result).Inc()
}

// SetNetWorth records the current net worth.
func (r *Registry) SetNetWorth(v float64) {
	if r == nil {
		return
	}
	r.NetWorth.Set(v)
}
