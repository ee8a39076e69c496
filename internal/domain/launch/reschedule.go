package launch

import (
	"time"

	"github.com/storelaunch/backend/internal/domain/shared"
)

// ReschedulePolicy decides which sibling tasks follow a date change
type ReschedulePolicy string

const (
	PolicyThisOnly     ReschedulePolicy = "THIS_ONLY"
	PolicyCascadeLater ReschedulePolicy = "CASCADE_LATER"
	PolicyCascadeAll   ReschedulePolicy = "CASCADE_ALL"
)

// ParsePolicy validates a policy, returning def when s is empty
func ParsePolicy(s string, def ReschedulePolicy) (ReschedulePolicy, error) {
	if s == "" {
		return def, nil
	}
	p := ReschedulePolicy(s)
	switch p {
	case PolicyThisOnly, PolicyCascadeLater, PolicyCascadeAll:
		return p, nil
	}
	return "", shared.InvalidInput("Invalid reschedule policy: " + s)
}

// RescheduleRequest moves a task. At least one date must be set; a
// missing date moves by the same number of days as the other.
type RescheduleRequest struct {
	StartDate *time.Time
	DueDate   *time.Time
	Policy    ReschedulePolicy
}

// Reschedule moves target and shifts siblings according to the policy.
// It returns every task whose dates changed, target first.
func Reschedule(target *Task, siblings []*Task, req RescheduleRequest) ([]*Task, error) {
	if target.Locked {
		return nil, ErrTaskLocked
	}
	if req.StartDate == nil && req.DueDate == nil {
		return nil, shared.InvalidInput("Start date or due date is required")
	}

	oldDue := target.DueDate
	var delta int
	if req.DueDate != nil {
		delta = DaysBetween(target.DueDate, *req.DueDate)
	} else {
		delta = DaysBetween(target.StartDate, *req.StartDate)
	}

	start := target.StartDate.AddDate(0, 0, delta)
	due := target.DueDate.AddDate(0, 0, delta)
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.DueDate != nil {
		due = *req.DueDate
	}
	if err := target.MoveTo(start, due); err != nil {
		return nil, err
	}

	changed := []*Task{target}
	if req.Policy == PolicyThisOnly || delta == 0 {
		return changed, nil
	}
	for _, t := range siblings {
		if t.ID == target.ID {
			continue
		}
		if req.Policy == PolicyCascadeLater && t.DueDate.Before(oldDue) {
			continue
		}
		if t.Shift(delta) {
			changed = append(changed, t)
		}
	}
	return changed, nil
}

// ShiftForOpenDate moves store tasks after the planned open date changed
// by delta days. THIS_ONLY moves nothing, CASCADE_LATER moves tasks due
// on or after today, and CASCADE_ALL moves every unlocked task.
func ShiftForOpenDate(tasks []*Task, delta int, policy ReschedulePolicy, today time.Time) []*Task {
	if delta == 0 || policy == PolicyThisOnly {
		return nil
	}
	today = DateOnly(today)
	var changed []*Task
	for _, t := range tasks {
		if policy == PolicyCascadeLater && t.DueDate.Before(today) {
			continue
		}
		if t.Shift(delta) {
			changed = append(changed, t)
		}
	}
	return changed
}
