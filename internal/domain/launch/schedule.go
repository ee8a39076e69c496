package launch

import (
	"time"

	"github.com/google/uuid"
)

// GenerationPlan is the result of materializing a template for a store
type GenerationPlan struct {
	// Remove lists existing tasks that the template replaces
	Remove []*Task
	Create []*Task
}

// PlanGeneration materializes tpl against openDate. Existing TEMPLATE
// tasks from the same template are replaced, except those flagged as
// manually overridden; template tasks with a surviving override are not
// generated again. MANUAL tasks are never touched.
func PlanGeneration(storeID uuid.UUID, tpl *LaunchTemplate, openDate time.Time, existing []*Task) GenerationPlan {
	owned := make(map[uuid.UUID]bool, len(tpl.Tasks))
	for _, tt := range tpl.Tasks {
		owned[tt.ID] = true
	}

	plan := GenerationPlan{}
	kept := make(map[uuid.UUID]bool)
	for _, t := range existing {
		if t.SourceType != SourceTemplate || t.TemplateTaskID == nil || !owned[*t.TemplateTaskID] {
			continue
		}
		if t.ManualOverride {
			kept[*t.TemplateTaskID] = true
			continue
		}
		plan.Remove = append(plan.Remove, t)
	}

	for _, tt := range tpl.Tasks {
		if kept[tt.ID] {
			continue
		}
		plan.Create = append(plan.Create, NewTaskFromTemplate(storeID, tt, openDate))
	}
	return plan
}
