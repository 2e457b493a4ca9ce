// Package metrics defines and registers all custom Prometheus metrics
// for the booking API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// BookingsCreatedTotal counts appointments created successfully.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_created_total",
		Help:      "Total number of appointments successfully created.",
	},
)

// BookingRejectionsTotal counts business-rule rejections of Create.
// Label:
//   - reason: "past_date", "self_booking", "invalid_provider",
//     "invalid_client", "slot_unavailable", "slot_taken"
var BookingRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_rejections_total",
		Help:      "Total number of booking attempts rejected, by reason.",
	},
	[]string{"reason"},
)

// DayScheduleQueriesTotal counts day-schedule reads by cache outcome.
// Label:
//   - result: "hit" (served from cache) or "miss" (recomputed)
var DayScheduleQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "day_schedule_queries_total",
		Help:      "Total number of day-schedule queries, labelled by cache result.",
	},
	[]string{"result"},
)

// NotificationsEnqueuedTotal counts notifications handed to the queue.
var NotificationsEnqueuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_enqueued_total",
		Help:      "Total number of notifications enqueued for delivery.",
	},
)

// NotificationQueueDepth tracks pending notifications per worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// CacheInvalidationsTotal counts day-schedule cache invalidations.
var CacheInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of day-schedule cache keys invalidated after a booking.",
	},
)
