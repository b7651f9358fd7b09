// Package metrics exposes Prometheus collectors for the bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gudang"

// Metrics groups the bot's collectors. A nil *Metrics records nothing.
type Metrics struct {
	commands      *prometheus.CounterVec
	schemaRefresh *prometheus.CounterVec
	catalogItems  prometheus.Gauge
	stockUnits    prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands handled, by command and outcome.",
		}, []string{"command", "outcome"}),
		schemaRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schema_refresh_total",
			Help:      "Command schema declarations, by result.",
		}, []string{"result"}),
		catalogItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_items",
			Help:      "Number of registered item names.",
		}),
		stockUnits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stock_units",
			Help:      "Total units held across all items.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.commands, m.schemaRefresh, m.catalogItems, m.stockUnits)
	}
	return m
}

// ObserveCommand counts one handled command.
func (m *Metrics) ObserveCommand(command, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, outcome).Inc()
}

// ObserveSchemaRefresh counts one schema declaration.
func (m *Metrics) ObserveSchemaRefresh(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.schemaRefresh.WithLabelValues(result).Inc()
}

// SetInventory publishes the current catalog size and stock total.
func (m *Metrics) SetInventory(items int, units int64) {
	if m == nil {
		return
	}
	m.catalogItems.Set(float64(items))
	m.stockUnits.Set(float64(units))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
