package analysis

import "github.com/creativeminds/analytics/internal/domain/model"

// ProjectMetrics is the earned-value bundle of one project.
type ProjectMetrics struct {
	TotalTasks      int     `json:"total_tareas" yaml:"total_tareas"`
	CompletedTasks  int     `json:"tareas_completadas" yaml:"tareas_completadas"`
	PendingTasks    int     `json:"tareas_pendientes" yaml:"tareas_pendientes"`
	InProgressTasks int     `json:"tareas_en_progreso" yaml:"tareas_en_progreso"`
	CompletionRate  float64 `json:"tasa_completitud" yaml:"tasa_completitud"`

	TotalDays       *int     `json:"duracion_total_dias" yaml:"duracion_total_dias"`
	ElapsedDays     *int     `json:"dias_transcurridos" yaml:"dias_transcurridos"`
	ElapsedTimePct  *float64 `json:"porcentaje_tiempo_transcurrido" yaml:"porcentaje_tiempo_transcurrido"`
	TimeDeviation   *float64 `json:"desviacion_tiempo_progreso" yaml:"desviacion_tiempo_progreso"`
	Budget          *float64 `json:"presupuesto_estimado" yaml:"presupuesto_estimado"`
	ActualCost      *float64 `json:"costo_actual" yaml:"costo_actual"`
	BudgetUsedPct   float64  `json:"porcentaje_presupuesto_usado" yaml:"porcentaje_presupuesto_usado"`
	RemainingBudget float64  `json:"presupuesto_restante" yaml:"presupuesto_restante"`

	PlannedValue float64 `json:"valor_planificado" yaml:"valor_planificado"`
	EarnedValue  float64 `json:"valor_ganado" yaml:"valor_ganado"`
	SPI          float64 `json:"indice_rendimiento_cronograma" yaml:"indice_rendimiento_cronograma"`
	CPI          float64 `json:"indice_rendimiento_costo" yaml:"indice_rendimiento_costo"`

	TotalResources int `json:"total_recursos" yaml:"total_recursos"`
	TotalKPIs      int `json:"total_kpis" yaml:"total_kpis"`
}

// ProjectMetrics computes the earned-value bundle of p from its own tasks,
// resources and KPIs.
func (e *Engine) ProjectMetrics(p model.Project, tasks []model.Task, resources []model.Resource, kpis []model.KPI) ProjectMetrics {
	today := e.Today()
	m := ProjectMetrics{
		TotalTasks:     len(tasks),
		Budget:         p.Budget,
		ActualCost:     p.Cost,
		TotalResources: len(resources),
		TotalKPIs:      len(kpis),
	}
	for _, t := range tasks {
		switch t.Status {
		case model.TaskCompleted:
			m.CompletedTasks++
		case model.TaskPending:
			m.PendingTasks++
		case model.TaskInProgress:
			m.InProgressTasks++
		}
	}
	m.CompletionRate = pct(m.CompletedTasks, m.TotalTasks)

	if p.Start != nil && p.End != nil {
		total := p.Start.DaysUntil(*p.End)
		elapsed := max(0, p.Start.DaysUntil(today))
		var elapsedPct float64
		if total > 0 {
			elapsedPct = float64(elapsed) / float64(total) * 100
		}
		m.TotalDays = &total
		m.ElapsedDays = &elapsed
		m.ElapsedTimePct = &elapsedPct
		if p.Progress != nil {
			dev := elapsedPct - *p.Progress
			m.TimeDeviation = &dev
		}
	}

	budget, cost, progress := model.Float(p.Budget), model.Float(p.Cost), model.Float(p.Progress)
	if budget > 0 {
		m.BudgetUsedPct = cost / budget * 100
		m.RemainingBudget = budget - cost
	}
	if m.ElapsedTimePct != nil {
		m.PlannedValue = budget * (*m.ElapsedTimePct / 100)
	}
	m.EarnedValue = budget * (progress / 100)
	if m.PlannedValue > 0 {
		m.SPI = m.EarnedValue / m.PlannedValue
	}
	if cost > 0 {
		m.CPI = m.EarnedValue / cost
	}
	return m
}
