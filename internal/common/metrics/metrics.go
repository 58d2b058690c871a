// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_api_requests_total",
			Help: "Total number of tracker API requests by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "hr_api_request_duration_seconds",
			Help: "Duration of tracker API requests in seconds",
		},
		[]string{"operation"},
	)

	SessionExpirations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_session_expirations_total",
			Help: "Sessions ended without an explicit logout",
		},
		[]string{"reason"},
	)

	FormStepValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_form_step_validations_total",
			Help: "Applicant form step validations by result",
		},
		[]string{"step", "result"},
	)

	ApplicationsFiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hr_applications_filtered_total",
			Help: "Number of dashboard filter evaluations",
		},
	)

	SessionLoggedIn = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hr_session_logged_in",
			Help: "1 while a valid session is held",
		},
	)
)
