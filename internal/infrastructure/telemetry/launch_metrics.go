package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// LaunchMetrics counts business events of the launch platform. A nil
// *LaunchMetrics is valid and records nothing.
type LaunchMetrics struct {
	tasksGenerated   *Counter
	tasksRescheduled *Counter
	costVersions     *Counter
	translations     *Counter
	loginAttempts    *Counter
}

// NewLaunchMetrics creates the business instruments on meter
func NewLaunchMetrics(meter metric.Meter) (*LaunchMetrics, error) {
	var (
		m   LaunchMetrics
		err error
	)
	if m.tasksGenerated, err = NewCounter(meter, "launch_tasks_generated_total", "Tasks materialized from launch templates", "{task}"); err != nil {
		return nil, err
	}
	if m.tasksRescheduled, err = NewCounter(meter, "launch_tasks_rescheduled_total", "Tasks moved by a reschedule", "{task}"); err != nil {
		return nil, err
	}
	if m.costVersions, err = NewCounter(meter, "recipe_cost_versions_calculated_total", "Cost versions computed", "{version}"); err != nil {
		return nil, err
	}
	if m.translations, err = NewCounter(meter, "translations_total", "Recipe translations served", "{translation}"); err != nil {
		return nil, err
	}
	if m.loginAttempts, err = NewCounter(meter, "auth_login_attempts_total", "Login attempts by outcome", "{attempt}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// TasksGenerated records n generated tasks
func (m *LaunchMetrics) TasksGenerated(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.tasksGenerated.Add(ctx, int64(n))
}

// TasksRescheduled records n moved tasks under a policy
func (m *LaunchMetrics) TasksRescheduled(ctx context.Context, policy string, n int) {
	if m == nil {
		return
	}
	m.tasksRescheduled.Add(ctx, int64(n), AttrPolicy.String(policy))
}

// CostVersionCalculated records one cost rollup
func (m *LaunchMetrics) CostVersionCalculated(ctx context.Context) {
	if m == nil {
		return
	}
	m.costVersions.Inc(ctx)
}

// Translated records one translation by provider
func (m *LaunchMetrics) Translated(ctx context.Context, provider string) {
	if m == nil {
		return
	}
	m.translations.Inc(ctx, AttrProvider.String(provider))
}

// LoginAttempt records a login by outcome (success or failure)
func (m *LaunchMetrics) LoginAttempt(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.loginAttempts.Inc(ctx, AttrOutcome.String(outcome))
}
