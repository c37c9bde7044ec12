package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "appointments"

type Collector struct {
	BookedTotal         prometheus.Counter
	RejectedTotal       *prometheus.CounterVec
	CanceledTotal       prometheus.Counter
	NotificationsFailed prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewCollector registers the booking metrics on reg. Passing a fresh
// prometheus.NewRegistry keeps tests isolated from the global registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		BookedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booked_total",
			Help:      "Appointments successfully booked.",
		}),
		RejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_rejected_total",
			Help:      "Booking attempts rejected, by reason.",
		}, []string{"reason"}),
		CanceledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "canceled_total",
			Help:      "Appointments canceled by their booker.",
		}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Provider notifications that could not be stored after a booking.",
		}),
		gatherer: reg,
	}
	reg.MustRegister(c.BookedTotal, c.RejectedTotal, c.CanceledTotal, c.NotificationsFailed)
	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
