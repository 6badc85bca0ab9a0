// Package metrics exposes the prometheus collectors of the service. A nil *Metrics is
// valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookly"

const (
	ResultSuccess  = "success"
	ResultConflict = "conflict"
	ResultLimited  = "plan_limited"
	ResultError    = "error"
)

type Metrics struct {
	registry            *prometheus.Registry
	appointmentsCreated *prometheus.CounterVec
	slotQueries         prometheus.Counter
	notifications       *prometheus.CounterVec
	reminderBatch       prometheus.Histogram
	outboxPublished     *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		appointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_created_total",
			Help:      "Appointment create attempts by result.",
		}, []string{"result"}),
		slotQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_queries_total",
			Help:      "Slot availability queries served.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by type and status.",
		}, []string{"type", "status"}),
		reminderBatch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reminder_batch_duration_seconds",
			Help:      "Duration of one reminder dispatch run.",
			Buckets:   prometheus.DefBuckets,
		}),
		outboxPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_published_total",
			Help:      "Outbox events handed to the transport by result.",
		}, []string{"result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.appointmentsCreated,
		m.slotQueries,
		m.notifications,
		m.reminderBatch,
		m.outboxPublished,
	)

	return m
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) AppointmentCreated(result string) {
	if m == nil {
		return
	}

	m.appointmentsCreated.WithLabelValues(result).Inc()
}

func (m *Metrics) SlotQueried() {
	if m == nil {
		return
	}

	m.slotQueries.Inc()
}

func (m *Metrics) NotificationDelivered(notificationType, status string) {
	if m == nil {
		return
	}

	m.notifications.WithLabelValues(notificationType, status).Inc()
}

func (m *Metrics) ReminderBatchObserved(elapsed time.Duration) {
	if m == nil {
		return
	}

	m.reminderBatch.Observe(elapsed.Seconds())
}

func (m *Metrics) OutboxPublished(result string) {
	if m == nil {
		return
	}

	m.outboxPublished.WithLabelValues(result).Inc()
}
