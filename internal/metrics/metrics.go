package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for seat booking. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	FlightsAdded       prometheus.Counter
	SeatsBooked        prometheus.Counter
	SeatsCancelled     prometheus.Counter
	BookingsRejected   *prometheus.CounterVec
	AccountsRegistered prometheus.Counter
	FailedLogins       prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FlightsAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "seatbooking_flights_added_total",
			Help: "Total number of flights added, including seeded flights",
		}),
		SeatsBooked: f.NewCounter(prometheus.CounterOpts{
			Name: "seatbooking_seats_booked_total",
			Help: "Total number of successful seat bookings",
		}),
		SeatsCancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "seatbooking_seats_cancelled_total",
			Help: "Total number of cancelled seat bookings",
		}),
		BookingsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "seatbooking_bookings_rejected_total",
			Help: "Booking attempts that did not change any seat, by reason",
		}, []string{"reason"}),
		AccountsRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "seatbooking_accounts_registered_total",
			Help: "Total number of registered accounts",
		}),
		FailedLogins: f.NewCounter(prometheus.CounterOpts{
			Name: "seatbooking_failed_logins_total",
			Help: "Total number of rejected login attempts",
		}),
	}
}

func (m *Metrics) IncFlightsAdded() {
	if m == nil {
		return
	}
	m.FlightsAdded.Inc()
}

func (m *Metrics) IncSeatsBooked() {
	if m == nil {
		return
	}
	m.SeatsBooked.Inc()
}

func (m *Metrics) IncSeatsCancelled() {
	if m == nil {
		return
	}
	m.SeatsCancelled.Inc()
}

func (m *Metrics) IncBookingsRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncAccountsRegistered() {
	if m == nil {
		return
	}
	m.AccountsRegistered.Inc()
}

func (m *Metrics) IncFailedLogins() {
	if m == nil {
		return
	}
	m.FailedLogins.Inc()
}
