package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "carrental"

var (
	once sync.Once

	requestsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_created_total",
			Help:      "Booking requests submitted, by outcome.",
		},
		[]string{"result"},
	)

	confirmations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confirmations_total",
			Help:      "Request confirmations attempted, by outcome.",
		},
		[]string{"result"},
	)

	statusRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_refresh_total",
			Help:      "Completed vehicle status refresh passes.",
		},
	)

	vehiclesRented = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vehicles_rented",
			Help:      "Vehicles shown as rented after the last refresh.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route template and status code.",
		},
		[]string{"route", "code"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(requestsCreated, confirmations, statusRefreshes, vehiclesRented, httpRequests)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Outcome labels.
const (
	ResultOK       = "ok"
	ResultConflict = "conflict"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

func IncRequestCreated(result string) {
	requestsCreated.WithLabelValues(result).Inc()
}

func IncConfirmation(result string) {
	confirmations.WithLabelValues(result).Inc()
}

func ObserveStatusRefresh(rented int) {
	statusRefreshes.Inc()
	vehiclesRented.Set(float64(rented))
}

func IncHTTPRequest(route, code string) {
	httpRequests.WithLabelValues(route, code).Inc()
}
