package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the employee module. Tracks workflow
// outcomes and the critical persist-then-publish path duration.
type Metrics struct {
	EmployeesCreated        prometheus.Counter
	ConferenceRegistrations prometheus.Counter
	EventsPublished         *prometheus.CounterVec
	PublishFailures         *prometheus.CounterVec
	SendToConferenceSeconds prometheus.Histogram
}

// New creates a Metrics instance with all employee module metrics registered.
func New() *Metrics {
	return &Metrics{
		EmployeesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "employees_created_total",
			Help: "Total number of employees created",
		}),
		ConferenceRegistrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "employees_conference_registrations_total",
			Help: "Total number of committed conference registrations",
		}),
		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "employees_events_published_total",
			Help: "Total number of notification events handed to the broker",
		}, []string{"topic"}),
		PublishFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "employees_publish_failures_total",
			Help: "Total number of broker publish failures (each rolls back a registration)",
		}, []string{"topic"}),
		SendToConferenceSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "employees_send_to_conference_duration_seconds",
			Help:    "Duration of the full registration workflow including publish",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementEmployeesCreated records a committed employee creation.
func (m *Metrics) IncrementEmployeesCreated() {
	m.EmployeesCreated.Inc()
}

// IncrementRegistrations records a committed conference registration.
func (m *Metrics) IncrementRegistrations() {
	m.ConferenceRegistrations.Inc()
}

// IncrementPublished records a successful publish to a topic.
func (m *Metrics) IncrementPublished(topic string) {
	m.EventsPublished.WithLabelValues(topic).Inc()
}

// IncrementPublishFailures records a failed publish to a topic.
func (m *Metrics) IncrementPublishFailures(topic string) {
	m.PublishFailures.WithLabelValues(topic).Inc()
}

// ObserveSendToConference records the workflow duration.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveSendToConference(start time.Time) {
	m.SendToConferenceSeconds.Observe(time.Since(start).Seconds())
}
