package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	reservationCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atelier",
			Name:      "reservation_created_total",
			Help:      "Count of reservations created by kind.",
		},
		[]string{"kind"},
	)

	reservationCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "atelier",
			Name:      "reservation_cancelled_total",
			Help:      "Count of reservations cancelled or blocks lifted.",
		},
	)

	exceptionWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atelier",
			Name:      "exception_writes_total",
			Help:      "Count of temporary-hours changes by action.",
		},
		[]string{"action"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atelier",
			Name:      "http_requests_total",
			Help:      "Count of API requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	openState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "atelier",
			Name:      "open",
			Help:      "1 when the shop is currently open.",
		},
	)

	closingSoon = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "atelier",
			Name:      "closing_soon",
			Help:      "1 when the shop closes within the soon threshold.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			reservationCreated, reservationCancelled, exceptionWrites,
			httpRequests, openState, closingSoon,
		)
	})
}

func IncReservationCreated(kind string) {
	reservationCreated.WithLabelValues(kind).Inc()
}

func IncReservationCancelled() {
	reservationCancelled.Inc()
}

func IncExceptionWrite(action string) {
	exceptionWrites.WithLabelValues(action).Inc()
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func SetOpenState(open, soon bool) {
	openState.Set(boolGauge(open))
	closingSoon.Set(boolGauge(open && soon))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
