package metrics

import "github.com/prometheus/client_golang/prometheus"

// DirectoryMetrics exposes counters for upstream doctor fetches.
type DirectoryMetrics struct {
	fetchTotal *prometheus.CounterVec
}

func NewDirectoryMetrics(reg prometheus.Registerer) *DirectoryMetrics {
	m := &DirectoryMetrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "doctors",
			Name:      "fetch_total",
			Help:      "Total upstream doctor fetches by operation and outcome",
		}, []string{"operation", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.fetchTotal)
	return m
}

// ObserveFetch records one fetch attempt. operation is "list" or "detail",
// status is "succeeded", "failed" or "suppressed".
func (m *DirectoryMetrics) ObserveFetch(operation, status string) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(operation, status).Inc()
}

// AppointmentMetrics exposes counters for the appointment lifecycle.
type AppointmentMetrics struct {
	operationsTotal    *prometheus.CounterVec
	validationFailures prometheus.Counter
}

func NewAppointmentMetrics(reg prometheus.Registerer) *AppointmentMetrics {
	m := &AppointmentMetrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "appointments",
			Name:      "operations_total",
			Help:      "Total appointment store operations by kind",
		}, []string{"operation"}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "appointments",
			Name:      "validation_failures_total",
			Help:      "Total appointment inputs rejected by validation",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operationsTotal, m.validationFailures)
	return m
}

// ObserveOperation records one completed store mutation
// ("create", "update", "reschedule", "cancel", "remove").
func (m *AppointmentMetrics) ObserveOperation(operation string) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(operation).Inc()
}

// ObserveValidationFailure records one rejected input.
func (m *AppointmentMetrics) ObserveValidationFailure() {
	if m == nil {
		return
	}
	m.validationFailures.Inc()
}
