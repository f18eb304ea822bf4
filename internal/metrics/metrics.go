package metrics

import (
	"rental-registry/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registry's Prometheus collectors.
type Metrics struct {
	Calls        *prometheus.CounterVec
	RentReceived prometheus.Counter
	LandlordPaid prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Calls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_registry_calls_total",
			Help: "Registry calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		RentReceived: f.NewCounter(prometheus.CounterOpts{
			Name: "rental_registry_rent_received_total",
			Help: "Sum of values attached to committed calls",
		}),
		LandlordPaid: f.NewCounter(prometheus.CounterOpts{
			Name: "rental_registry_landlord_payout_total",
			Help: "Sum of funds transferred out to landlords",
		}),
	}
}

func (m *Metrics) ObserveCall(operation, outcome string) {
	m.Calls.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveSettlement(received, paidOut domain.Balance) {
	m.RentReceived.Add(float64(received))
	m.LandlordPaid.Add(float64(paidOut))
}
