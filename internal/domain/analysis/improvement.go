package analysis

import (
	"fmt"
	"sort"

	"github.com/creativeminds/analytics/internal/domain/model"
)

// Severity of an improvement area.
const (
	SeverityHigh   = "Alta"
	SeverityMedium = "Media"
)

// Improvement area thresholds.
const (
	overloadTasks         = 8
	stalledTaskDays       = 14
	maxExamples           = 3
	manyOverdueProjects   = 3
	longOverdueDays       = 30
	manyOverloaded        = 3
	manyOverBudget        = 2
	unknownEmployee       = "Desconocido"
	areaOverdueProjects   = "Proyectos retrasados"
	areaOverloadedPeople  = "Sobrecarga de recursos humanos"
	areaBudgetControl     = "Control presupuestario"
	areaTaskProgress      = "Progreso de tareas"
	actionOverdueProjects = "Realizar reunión de revisión urgente con los responsables de estos proyectos"
	actionOverloaded      = "Redistribuir tareas y considerar la asignación de más recursos"
	actionBudgetControl   = "Realizar auditoría de costos y revisar procesos de estimación presupuestaria"
	actionStalledTasks    = "Revisar bloqueos y dependencias que impiden el avance de las tareas"
)

// ImprovementArea is one priority area with its worst examples.
type ImprovementArea struct {
	Area        string `json:"area" yaml:"area"`
	Description string `json:"descripcion" yaml:"descripcion"`
	Severity    string `json:"gravedad" yaml:"gravedad"`
	Examples    any    `json:"ejemplos" yaml:"ejemplos"`
	Action      string `json:"accion_recomendada" yaml:"accion_recomendada"`
}

// OverdueProject is an example of the overdue projects area.
type OverdueProject struct {
	ID          *int64   `json:"id" yaml:"id"`
	Name        string   `json:"nombre" yaml:"nombre"`
	DaysOverdue int      `json:"dias_retraso" yaml:"dias_retraso"`
	Progress    *float64 `json:"progreso" yaml:"progreso"`
}

// OverloadedEmployee is an example of the workload area.
type OverloadedEmployee struct {
	ID           int64  `json:"id" yaml:"id"`
	Name         string `json:"nombre" yaml:"nombre"`
	Tasks        int    `json:"num_tareas" yaml:"num_tareas"`
	PendingTasks int    `json:"tareas_pendientes" yaml:"tareas_pendientes"`
}

// OverBudgetProject is an example of the budget control area.
type OverBudgetProject struct {
	ID         *int64  `json:"id" yaml:"id"`
	Name       string  `json:"nombre" yaml:"nombre"`
	Budget     float64 `json:"presupuesto" yaml:"presupuesto"`
	ActualCost float64 `json:"costo_actual" yaml:"costo_actual"`
	ExcessPct  float64 `json:"exceso_porcentaje" yaml:"exceso_porcentaje"`
}

// StalledTask is an example of the task progress area.
type StalledTask struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"nombre" yaml:"nombre"`
	Project    string `json:"proyecto" yaml:"proyecto"`
	DaysActive int    `json:"dias_activa" yaml:"dias_activa"`
}

// ImprovementAreas lists the areas needing immediate attention, in fixed
// order: overdue projects, overloaded employees, over-budget projects and
// stalled tasks. Areas without examples are omitted.
func (e *Engine) ImprovementAreas(projects []model.Project, tasks []model.Task, employees []model.Employee) []ImprovementArea {
	today := e.Today()
	areas := []ImprovementArea{}

	var overdue []OverdueProject
	for _, p := range projects {
		if ProjectOverdue(p, today) {
			overdue = append(overdue, OverdueProject{
				ID: p.Code, Name: p.Name, DaysOverdue: p.End.DaysUntil(today), Progress: p.Progress,
			})
		}
	}
	if len(overdue) > 0 {
		sort.SliceStable(overdue, func(i, j int) bool { return overdue[i].DaysOverdue > overdue[j].DaysOverdue })
		severity := SeverityMedium
		if len(overdue) > manyOverdueProjects || overdue[0].DaysOverdue > longOverdueDays {
			severity = SeverityHigh
		}
		areas = append(areas, ImprovementArea{
			Area:        areaOverdueProjects,
			Description: fmt.Sprintf("Hay %d proyectos que han superado su fecha de finalización", len(overdue)),
			Severity:    severity,
			Examples:    overdue[:min(maxExamples, len(overdue))],
			Action:      actionOverdueProjects,
		})
	}

	if overloaded := overloadedEmployees(tasks, employees); len(overloaded) > 0 {
		severity := SeverityMedium
		if len(overloaded) > manyOverloaded {
			severity = SeverityHigh
		}
		areas = append(areas, ImprovementArea{
			Area:        areaOverloadedPeople,
			Description: fmt.Sprintf("Hay %d empleados con excesiva carga de trabajo", len(overloaded)),
			Severity:    severity,
			Examples:    overloaded[:min(maxExamples, len(overloaded))],
			Action:      actionOverloaded,
		})
	}

	var overBudget []OverBudgetProject
	for _, p := range projects {
		budget, cost := model.Float(p.Budget), model.Float(p.Cost)
		if budget > 0 && cost > budget {
			overBudget = append(overBudget, OverBudgetProject{
				ID: p.Code, Name: p.Name, Budget: budget, ActualCost: cost,
				ExcessPct: round((cost-budget)/budget*100, 1),
			})
		}
	}
	if len(overBudget) > 0 {
		sort.SliceStable(overBudget, func(i, j int) bool { return overBudget[i].ExcessPct > overBudget[j].ExcessPct })
		severity := SeverityMedium
		if len(overBudget) > manyOverBudget {
			severity = SeverityHigh
		}
		areas = append(areas, ImprovementArea{
			Area:        areaBudgetControl,
			Description: fmt.Sprintf("Hay %d proyectos que han excedido su presupuesto", len(overBudget)),
			Severity:    severity,
			Examples:    overBudget[:min(maxExamples, len(overBudget))],
			Action:      actionBudgetControl,
		})
	}

	var stalled []StalledTask
	for _, t := range tasks {
		if t.Status != model.TaskInProgress || t.Start == nil {
			continue
		}
		if days := t.Start.DaysUntil(today); days > stalledTaskDays {
			stalled = append(stalled, StalledTask{ID: t.ID, Name: t.Name, Project: t.ProjectName, DaysActive: days})
		}
	}
	if len(stalled) > 0 {
		sort.SliceStable(stalled, func(i, j int) bool { return stalled[i].DaysActive > stalled[j].DaysActive })
		areas = append(areas, ImprovementArea{
			Area:        areaTaskProgress,
			Description: fmt.Sprintf("Hay %d tareas en progreso por más de 2 semanas", len(stalled)),
			Severity:    SeverityMedium,
			Examples:    stalled[:min(maxExamples, len(stalled))],
			Action:      actionStalledTasks,
		})
	}
	return areas
}

// overloadedEmployees returns assignees of more than eight tasks, most loaded
// first and by id on ties.
func overloadedEmployees(tasks []model.Task, employees []model.Employee) []OverloadedEmployee {
	type load struct{ total, pending int }
	loads := make(map[int64]*load)
	for _, t := range tasks {
		if t.AssigneeID == nil {
			continue
		}
		l, ok := loads[*t.AssigneeID]
		if !ok {
			l = &load{}
			loads[*t.AssigneeID] = l
		}
		l.total++
		if t.Status == model.TaskPending {
			l.pending++
		}
	}
	names := make(map[int64]string, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}

	var out []OverloadedEmployee
	for id, l := range loads {
		if l.total <= overloadTasks {
			continue
		}
		name, ok := names[id]
		if !ok {
			name = unknownEmployee
		}
		out = append(out, OverloadedEmployee{ID: id, Name: name, Tasks: l.total, PendingTasks: l.pending})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tasks != out[j].Tasks {
			return out[i].Tasks > out[j].Tasks
		}
		return out[i].ID < out[j].ID
	})
	return out
}
