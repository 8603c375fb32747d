// Package metrics exposes Prometheus counters for planning runs and SSH
// sessions, plus the HTTP router that serves them.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

// Metric names
const (
	MetricNamePlansComputed   = "birdhouse_plans_computed_total"
	MetricNamePlanErrors      = "birdhouse_plan_errors_total"
	MetricNameLogsPlanned     = "birdhouse_logs_planned_total"
	MetricNameSessionsStarted = "birdhouse_ssh_sessions_started_total"
	MetricNameSessionsActive  = "birdhouse_ssh_sessions_active"
)

// Metric help text
const (
	HelpTextPlansComputed   = "Total number of training plans computed"
	HelpTextPlanErrors      = "Total number of rejected planning requests by error kind"
	HelpTextLogsPlanned     = "Total logs across all computed plans, by log type"
	HelpTextSessionsStarted = "Total number of SSH sessions started"
	HelpTextSessionsActive  = "Current number of open SSH sessions"
)

// Label names
const (
	LabelSource   = "source"
	LabelKind     = "kind"
	LabelMaterial = "material"
)

// SourceSSH labels plans computed in SSH sessions.
const SourceSSH = "ssh"

var (
	PlansComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlansComputed,
			Help: HelpTextPlansComputed,
		},
		[]string{LabelSource},
	)

	PlanErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlanErrors,
			Help: HelpTextPlanErrors,
		},
		[]string{LabelKind},
	)

	LogsPlanned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLogsPlanned,
			Help: HelpTextLogsPlanned,
		},
		[]string{LabelMaterial},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsStarted,
			Help: HelpTextSessionsStarted,
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSessionsActive,
			Help: HelpTextSessionsActive,
		},
	)
)

// RecordPlan counts a computed plan and the logs it needs.
func RecordPlan(source string, plan *planner.Plan) {
	PlansComputed.WithLabelValues(source).Inc()
	for _, step := range plan.Steps {
		LogsPlanned.WithLabelValues(step.Material).Add(float64(step.Quantity))
	}
}

// RecordError counts a rejected request under its error kind.
func RecordError(err error) {
	PlanErrors.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind maps a planner error to a metric label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, planner.ErrInvalidNumber):
		return "invalid_number"
	case errors.Is(err, planner.ErrBelowMinimumExperience):
		return "below_minimum_experience"
	case errors.Is(err, planner.ErrTargetAlreadyReached):
		return "target_already_reached"
	case errors.Is(err, planner.ErrMultiplierOutOfRange):
		return "multiplier_out_of_range"
	case errors.Is(err, planner.ErrUnknownLevel):
		return "unknown_level"
	default:
		return "other"
	}
}
