// Package metrics provides Prometheus metrics for the discovery, observer
// and importer components.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mediaimport"

// Registry holds every mediaimport metric plus the Go runtime collectors.
var Registry = prometheus.NewRegistry()

var (
	// ServersRegistered tracks discovered servers currently registered with the host
	ServersRegistered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "servers_registered",
			Help:      "Number of discovered servers currently registered with the host",
		},
	)

	// Registrations tracks provider registration attempts
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "registrations_total",
			Help:      "Total number of provider registration attempts",
		},
		[]string{"result"},
	)

	// Deactivations tracks providers deactivated because their server went silent
	Deactivations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "deactivations_total",
			Help:      "Total number of providers deactivated due to inactivity",
		},
	)

	// ObserversConnected tracks provider observers in the connected state
	ObserversConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "observer",
			Name:      "connected",
			Help:      "Number of provider observers currently connected",
		},
	)

	// ChangedItems tracks changed items forwarded to the host
	ChangedItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "observer",
			Name:      "changed_items_total",
			Help:      "Total number of changed items handled, by outcome",
		},
		[]string{"result"},
	)

	// Actions tracks importer action invocations
	Actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "importer",
			Name:      "actions_total",
			Help:      "Total number of dispatched importer actions",
		},
		[]string{"action", "result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		ServersRegistered,
		Registrations,
		Deactivations,
		ObserversConnected,
		ChangedItems,
		Actions,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordRegistration records the outcome of a provider registration.
func RecordRegistration(ok bool) {
	if ok {
		Registrations.WithLabelValues("success").Inc()
		return
	}
	Registrations.WithLabelValues("failure").Inc()
}

// RecordAction records a dispatched importer action.
func RecordAction(action, result string) {
	Actions.WithLabelValues(action, result).Inc()
}

// RecordChangedItems records n changed items with the given outcome
// ("forwarded", "unmatched", "failed").
func RecordChangedItems(result string, n int) {
	ChangedItems.WithLabelValues(result).Add(float64(n))
}
