package analysis

import (
	"sort"

	"github.com/creativeminds/analytics/internal/domain/model"
)

// Efficiency score weights.
const (
	budgetWeight     = 0.6
	completionWeight = 0.4
)

// GlobalMetrics is the dashboard summary over every project, task and employee.
type GlobalMetrics struct {
	TotalProjects      int      `json:"total_proyectos" yaml:"total_proyectos"`
	InProgress         int      `json:"proyectos_en_progreso" yaml:"proyectos_en_progreso"`
	Finished           int      `json:"proyectos_finalizados" yaml:"proyectos_finalizados"`
	Delayed            int      `json:"proyectos_retrasados" yaml:"proyectos_retrasados"`
	AvgProgress        *float64 `json:"progreso_promedio" yaml:"progreso_promedio"`
	TotalBudget        float64  `json:"presupuesto_total" yaml:"presupuesto_total"`
	TotalCost          float64  `json:"costo_actual_total" yaml:"costo_actual_total"`
	BudgetEfficiency   float64  `json:"eficiencia_presupuestaria" yaml:"eficiencia_presupuestaria"`
	TotalTasks         int      `json:"total_tareas" yaml:"total_tareas"`
	CompletedTasks     int      `json:"tareas_completadas" yaml:"tareas_completadas"`
	PendingTasks       int      `json:"tareas_pendientes" yaml:"tareas_pendientes"`
	AvailableEmployees int      `json:"empleados_disponibles" yaml:"empleados_disponibles"`
}

// ProjectSummary is one entry of the project list report.
type ProjectSummary struct {
	model.Project `yaml:",inline"`
	Efficiency    float64 `json:"eficiencia" yaml:"eficiencia"`
	Health        Health  `json:"estado_salud" yaml:"estado_salud"`
	DaysRemaining *int    `json:"dias_restantes" yaml:"dias_restantes"`
}

// GlobalMetrics aggregates the dashboard counters.
func (e *Engine) GlobalMetrics(projects []model.Project, tasks []model.Task, employees []model.Employee) GlobalMetrics {
	m := GlobalMetrics{
		TotalProjects: len(projects),
		Delayed:       e.DelayedProjects(projects, tasks),
		TotalTasks:    len(tasks),
	}
	progress := make([]float64, 0, len(projects))
	for _, p := range projects {
		switch p.Status {
		case model.ProjectInProgress:
			m.InProgress++
		case model.ProjectFinished:
			m.Finished++
		}
		if p.Progress != nil {
			progress = append(progress, *p.Progress)
		}
	}
	m.AvgProgress = meanPtr(progress)
	m.TotalBudget, m.TotalCost = totals(projects)
	m.BudgetEfficiency = BudgetEfficiency(projects)

	for _, t := range tasks {
		switch t.Status {
		case model.TaskCompleted:
			m.CompletedTasks++
		case model.TaskPending:
			m.PendingTasks++
		}
	}
	for _, emp := range employees {
		if emp.Availability == model.Available {
			m.AvailableEmployees++
		}
	}
	return m
}

func totals(projects []model.Project) (budget, cost float64) {
	for _, p := range projects {
		budget += model.Float(p.Budget)
		cost += model.Float(p.Cost)
	}
	return budget, cost
}

// BudgetEfficiency is (budget - cost) / budget * 100 over the summed
// projects, or 0 when the summed budget is not positive.
func BudgetEfficiency(projects []model.Project) float64 {
	budget, cost := totals(projects)
	return efficiency(budget, cost)
}

func efficiency(budget, cost float64) float64 {
	if budget <= 0 {
		return 0
	}
	return (budget - cost) / budget * 100
}

// ProjectOverdue reports whether p's end date has passed while it is unfinished.
func ProjectOverdue(p model.Project, today model.Date) bool {
	return p.Status != model.ProjectFinished && p.End != nil && p.End.Before(today)
}

// TaskOverdue reports whether t's end date has passed while it is not completed.
func TaskOverdue(t model.Task, today model.Date) bool {
	return t.Status != model.TaskCompleted && t.End != nil && t.End.Before(today)
}

// DelayedProjects counts each project at most once: either its own end date
// has passed unfinished, or at least one of its tasks is overdue.
func (e *Engine) DelayedProjects(projects []model.Project, tasks []model.Task) int {
	today := e.Today()
	late := make(map[int64]bool)
	for _, t := range tasks {
		if TaskOverdue(t, today) {
			late[t.ProjectID] = true
		}
	}
	count := 0
	for _, p := range projects {
		if ProjectOverdue(p, today) || late[p.ID] {
			count++
		}
	}
	return count
}

// EfficiencyScore blends budget efficiency and task completion for one
// project. Each term is 0 when its denominator is 0. The blend is not clamped.
func EfficiencyScore(p model.Project) float64 {
	var budgetTerm, completionTerm float64
	if budget := model.Float(p.Budget); budget > 0 {
		budgetTerm = (1 - model.Float(p.Cost)/budget) * 100
	}
	if p.TotalTasks > 0 {
		completionTerm = float64(p.CompletedTasks) / float64(p.TotalTasks) * 100
	}
	return budgetTerm*budgetWeight + completionTerm*completionWeight
}

// DaysRemaining is max(0, end - today), or nil without an end date.
func (e *Engine) DaysRemaining(p model.Project) *int {
	if p.End == nil {
		return nil
	}
	days := max(0, e.Today().DaysUntil(*p.End))
	return &days
}

// ProjectSummaries decorates every project with efficiency, health and days remaining.
func (e *Engine) ProjectSummaries(projects []model.Project) []ProjectSummary {
	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectSummary{
			Project:       p,
			Efficiency:    EfficiencyScore(p),
			Health:        e.Health(p),
			DaysRemaining: e.DaysRemaining(p),
		})
	}
	return out
}

// TopProjects returns the most advanced projects, highest progress first.
// Projects without progress sort last; ties keep input order.
func (e *Engine) TopProjects(projects []model.Project) []model.Project {
	sorted := make([]model.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Progress, sorted[j].Progress
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return *a > *b
	})
	if len(sorted) > e.topProjects {
		sorted = sorted[:e.topProjects]
	}
	return sorted
}
