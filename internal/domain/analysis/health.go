package analysis

import "github.com/creativeminds/analytics/internal/domain/model"

// Health is the traffic-light classification of a project.
type Health string

const (
	HealthGood         Health = "Bueno"
	HealthRegular      Health = "Regular"
	HealthAtRisk       Health = "En riesgo"
	HealthCritical     Health = "Crítico"
	HealthUndetermined Health = "No determinado"
)

// Deviation thresholds in percentage points.
const (
	atRiskScheduleDeviation  = -20
	atRiskBudgetDeviation    = 20
	regularScheduleDeviation = -10
	regularBudgetDeviation   = 10
)

// HealthAssessment carries the classification and the deviations behind it.
type HealthAssessment struct {
	Label             Health  `json:"estado_salud" yaml:"estado_salud"`
	Overdue           bool    `json:"vencido" yaml:"vencido"`
	ScheduleDeviation float64 `json:"desviacion_progreso" yaml:"desviacion_progreso"`
	BudgetDeviation   float64 `json:"desviacion_presupuesto" yaml:"desviacion_presupuesto"`
}

// Health classifies p. See Assess.
func (e *Engine) Health(p model.Project) Health {
	return e.Assess(p).Label
}

// Assess evaluates, first match wins: Crítico when overdue and unfinished,
// En riesgo when more than 20 points behind schedule or at least 20 points
// over budget, Regular at the same bounds with 10 points, else Bueno.
// Overdue needs only the end date and status. Past that check, a project
// without budget or progress cannot be assessed and is No determinado.
func (e *Engine) Assess(p model.Project) HealthAssessment {
	today := e.Today()
	if ProjectOverdue(p, today) {
		a := HealthAssessment{Label: HealthCritical, Overdue: true}
		if p.Budget != nil && p.Progress != nil {
			a.ScheduleDeviation = scheduleDeviation(p, today)
			a.BudgetDeviation = budgetDeviation(p)
		}
		return a
	}
	if p.Budget == nil || p.Progress == nil {
		return HealthAssessment{Label: HealthUndetermined}
	}
	a := HealthAssessment{
		ScheduleDeviation: scheduleDeviation(p, today),
		BudgetDeviation:   budgetDeviation(p),
	}

	switch {
	case a.ScheduleDeviation < atRiskScheduleDeviation || a.BudgetDeviation >= atRiskBudgetDeviation:
		a.Label = HealthAtRisk
	case a.ScheduleDeviation < regularScheduleDeviation || a.BudgetDeviation >= regularBudgetDeviation:
		a.Label = HealthRegular
	default:
		a.Label = HealthGood
	}
	return a
}

// scheduleDeviation is progress minus expected progress, 0 without a
// positive planned duration. p.Progress must be set.
func scheduleDeviation(p model.Project, today model.Date) float64 {
	if p.Start == nil || p.End == nil || p.Start.DaysUntil(*p.End) <= 0 {
		return 0
	}
	return *p.Progress - expectedProgress(p, today)
}

// expectedProgress interpolates linearly between start and end, counting
// elapsed days up to min(today, end). 0 without both dates.
func expectedProgress(p model.Project, today model.Date) float64 {
	if p.Start == nil || p.End == nil {
		return 0
	}
	total := p.Start.DaysUntil(*p.End)
	if total <= 0 {
		return 0
	}
	until := today
	if p.End.Before(today) {
		until = *p.End
	}
	return float64(p.Start.DaysUntil(until)) / float64(total) * 100
}

// budgetDeviation is cost/budget*100 - 100, 0 when budget is not positive.
func budgetDeviation(p model.Project) float64 {
	budget := model.Float(p.Budget)
	if budget <= 0 {
		return 0
	}
	return model.Float(p.Cost)/budget*100 - 100
}
