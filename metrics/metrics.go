// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubhouse_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clubhouse_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BookingsAdmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubhouse_bookings_admitted_total",
			Help: "Bookings admitted and stored",
		},
	)

	BookingRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubhouse_booking_rejections_total",
			Help: "Booking requests rejected, by reason",
		},
		[]string{"reason"},
	)

	BookedHours = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubhouse_booked_hours_total",
			Help: "Court hours booked",
		},
	)

	SlotCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubhouse_slot_cache_lookups_total",
			Help: "Slot board cache lookups by result",
		},
		[]string{"result"},
	)

	StatementsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubhouse_statements_generated_total",
			Help: "Monthly statements created",
		},
	)

	StatementsPaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubhouse_statements_paid_total",
			Help: "Monthly statements marked paid",
		},
	)

	MembersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubhouse_members_registered_total",
			Help: "Member registrations",
		},
	)
)

func RecordRequest(method, route string, status int, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func RecordAdmission(hours int) {
	BookingsAdmitted.Inc()
	BookedHours.Add(float64(hours))
}

func RecordRejection(reason string) {
	BookingRejections.WithLabelValues(reason).Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		SlotCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	SlotCacheLookups.WithLabelValues("miss").Inc()
}
