package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/creativeminds/analytics/internal/domain/model"
)

// FindingKind identifies which threshold check produced a finding.
// Recommendation templates are keyed by kind.
type FindingKind int

const (
	// FindingFiller is the default sentence of an otherwise empty bucket.
	FindingFiller FindingKind = iota

	FindingBudgetSavings
	FindingBudgetOverrun
	FindingOnTimeDelivery
	FindingDelayedProjects
	FindingLowAvailability
	FindingHighAvailability
	FindingLowProgress
	FindingGoodProgress
	FindingCrossDepartment
	FindingWorkloadOverload
	FindingUnevenWorkload

	FindingCostPerformance
	FindingAheadOfSchedule
	FindingHighCompletion
	FindingBudgetEfficient
	FindingBehindSchedule
	FindingCostOverrun
	FindingLowCompletion
	FindingDeliveryRisk
	FindingOverrunRisk
	FindingStalledStart
	FindingFewKPIs
	FindingFewResources
	FindingNearlyDone
)

// Finding is one SWOT entry. It encodes as its text.
type Finding struct {
	Kind FindingKind
	Text string
}

// MarshalJSON implements json.Marshaler.
func (f Finding) MarshalJSON() ([]byte, error) { return json.Marshal(f.Text) }

// MarshalYAML implements yaml.Marshaler.
func (f Finding) MarshalYAML() (any, error) { return f.Text, nil }

func (f Finding) String() string { return f.Text }

// Organization SWOT thresholds.
const (
	savingsStrengthPct     = 10
	overrunWeaknessPct     = -5
	delayedWeaknessPct     = 30
	onTimeStrengthPct      = 10
	onTimeMinActive        = 3
	lowAvailabilityPct     = 15
	highAvailabilityPct    = 40
	lowProgressPct         = 30
	goodProgressPct        = 70
	crossDepartmentMin     = 3
	overloadMaxTasks       = 10
	unevenWorkloadStdDev   = 5
	orgStrengthFiller      = "La organización mantiene operaciones estables"
	orgWeaknessFiller      = "No se identificaron debilidades críticas en este momento"
	orgOpportunityFiller   = "Considerar implementar más KPIs para medir el rendimiento de los proyectos"
	orgThreatFiller        = "Vigilar la asignación de recursos para evitar cuellos de botella"
	projectStrengthFiller  = "No se identificaron puntos fuertes destacables"
	projectWeaknessFiller  = "No se identificaron puntos débiles significativos"
	projectRiskFiller      = "No se identificaron riesgos críticos en este momento"
	projectOpportunityFill = "Considerar realizar una revisión detallada para identificar oportunidades de mejora"
)

// Project SWOT thresholds.
const (
	strongIndex          = 1.05
	weakIndex            = 0.9
	highCompletionPct    = 75
	efficientBudgetPct   = 85
	lateTimePct          = 80
	lowCompletionTimePct = 70
	lowCompletionPct     = 50
	deliveryRiskPct      = 20
	overrunRiskBudgetPct = 90
	stalledStartMin      = 3
	minProjectKPIs       = 3
	minProjectResources  = 2
	nearlyDonePct        = 95
)

// OrganizationSWOT is the organization-wide analysis bundle.
type OrganizationSWOT struct {
	Strengths     []Finding `json:"fortalezas" yaml:"fortalezas"`
	Weaknesses    []Finding `json:"debilidades" yaml:"debilidades"`
	Opportunities []Finding `json:"oportunidades" yaml:"oportunidades"`
	Threats       []Finding `json:"amenazas" yaml:"amenazas"`
}

// ProjectSWOT is the per-project analysis bundle.
type ProjectSWOT struct {
	Strengths     []Finding `json:"puntos_fuertes" yaml:"puntos_fuertes"`
	Weaknesses    []Finding `json:"puntos_debiles" yaml:"puntos_debiles"`
	Risks         []Finding `json:"riesgos" yaml:"riesgos"`
	Opportunities []Finding `json:"oportunidades" yaml:"oportunidades"`
}

func finding(kind FindingKind, format string, args ...any) Finding {
	if len(args) == 0 {
		return Finding{Kind: kind, Text: format}
	}
	return Finding{Kind: kind, Text: fmt.Sprintf(format, args...)}
}

func orFiller(bucket []Finding, text string) []Finding {
	if len(bucket) == 0 {
		return []Finding{{Kind: FindingFiller, Text: text}}
	}
	return bucket
}

// OrganizationSWOT runs the organization threshold battery. Every bucket
// holds at least one finding.
func (e *Engine) OrganizationSWOT(projects []model.Project, tasks []model.Task, employees []model.Employee) OrganizationSWOT {
	today := e.Today()
	var s OrganizationSWOT

	var active, finished []model.Project
	for _, p := range projects {
		switch p.Status {
		case model.ProjectInProgress:
			active = append(active, p)
		case model.ProjectFinished:
			finished = append(finished, p)
		}
	}

	if len(finished) > 0 {
		eff := BudgetEfficiency(finished)
		switch {
		case eff > savingsStrengthPct:
			s.Strengths = append(s.Strengths, finding(FindingBudgetSavings,
				"Buena eficiencia presupuestaria global (%.2f%% de ahorro promedio)", eff))
		case eff < overrunWeaknessPct:
			s.Weaknesses = append(s.Weaknesses, finding(FindingBudgetOverrun,
				"Tendencia a superar presupuestos (%.2f%% de sobrecosto promedio)", -eff))
		}
	}

	lateActive := 0
	for _, p := range active {
		if p.End != nil && p.End.Before(today) {
			lateActive++
		}
	}
	latePct := pct(lateActive, len(active))
	switch {
	case latePct > delayedWeaknessPct:
		s.Weaknesses = append(s.Weaknesses, finding(FindingDelayedProjects,
			"Alto porcentaje de proyectos retrasados (%.2f%%)", latePct))
	case latePct < onTimeStrengthPct && len(active) > onTimeMinActive:
		s.Strengths = append(s.Strengths, finding(FindingOnTimeDelivery,
			"Excelente cumplimiento de plazos (solo %.2f%% de proyectos retrasados)", latePct))
	}

	available := 0
	for _, emp := range employees {
		if emp.Availability == model.Available {
			available++
		}
	}
	availablePct := pct(available, len(employees))
	switch {
	case availablePct < lowAvailabilityPct:
		s.Threats = append(s.Threats, finding(FindingLowAvailability,
			"Baja disponibilidad de personal (%.2f%%)", availablePct))
	case availablePct > highAvailabilityPct:
		s.Opportunities = append(s.Opportunities, finding(FindingHighAvailability,
			"Alta disponibilidad de personal (%.2f%%) para nuevos proyectos", availablePct))
	}

	if avg, ok := activeProgress(active); ok {
		switch {
		case avg < lowProgressPct:
			s.Weaknesses = append(s.Weaknesses, finding(FindingLowProgress,
				"Bajo progreso promedio en los proyectos activos (%.2f%%)", avg))
		case avg > goodProgressPct:
			s.Strengths = append(s.Strengths, finding(FindingGoodProgress,
				"Buen progreso promedio en los proyectos activos (%.2f%%)", avg))
		}
	}

	if n := distinctDepartments(employees); n > crossDepartmentMin {
		s.Strengths = append(s.Strengths, finding(FindingCrossDepartment,
			"Buena colaboración interdepartamental (%d departamentos)", n))
	}

	if loads := tasksPerEmployee(employees, tasks); len(loads) > 0 {
		_, most := minMax(loads)
		if most > overloadMaxTasks {
			s.Threats = append(s.Threats, finding(FindingWorkloadOverload,
				"Posible sobrecarga de trabajo en algunos empleados (máx. %d tareas)", int(most)))
		}
		if populationStdDev(loads) > unevenWorkloadStdDev {
			s.Weaknesses = append(s.Weaknesses, finding(FindingUnevenWorkload,
				"Distribución desigual de la carga de trabajo entre empleados"))
		}
	}

	s.Strengths = orFiller(s.Strengths, orgStrengthFiller)
	s.Weaknesses = orFiller(s.Weaknesses, orgWeaknessFiller)
	s.Opportunities = orFiller(s.Opportunities, orgOpportunityFiller)
	s.Threats = orFiller(s.Threats, orgThreatFiller)
	return s
}

// activeProgress is the mean progress of in-progress projects. No active
// projects count as 0; active projects that all lack progress yield false.
func activeProgress(active []model.Project) (float64, bool) {
	if len(active) == 0 {
		return 0, true
	}
	values := make([]float64, 0, len(active))
	for _, p := range active {
		if p.Progress != nil {
			values = append(values, *p.Progress)
		}
	}
	return mean(values)
}

func distinctDepartments(employees []model.Employee) int {
	seen := make(map[string]struct{})
	for _, emp := range employees {
		if emp.Department != nil {
			seen[*emp.Department] = struct{}{}
		}
	}
	return len(seen)
}

// tasksPerEmployee counts assigned tasks per known employee, in roster order.
func tasksPerEmployee(employees []model.Employee, tasks []model.Task) []float64 {
	counts := make(map[int64]int)
	for _, t := range tasks {
		if t.AssigneeID != nil {
			counts[*t.AssigneeID]++
		}
	}
	loads := make([]float64, 0, len(employees))
	for _, emp := range employees {
		loads = append(loads, float64(counts[emp.ID]))
	}
	return loads
}

// ProjectSWOT runs the per-project threshold battery over the earned-value
// bundle. A check that needs a metric the project lacks does not trigger.
func (e *Engine) ProjectSWOT(p model.Project, tasks []model.Task, resources []model.Resource, kpis []model.KPI) ProjectSWOT {
	m := e.ProjectMetrics(p, tasks, resources, kpis)
	today := e.Today()
	var s ProjectSWOT

	elapsedAbove := func(v float64) bool { return m.ElapsedTimePct != nil && *m.ElapsedTimePct > v }
	elapsedBelow := func(v float64) bool { return m.ElapsedTimePct != nil && *m.ElapsedTimePct < v }

	if m.CPI > strongIndex {
		s.Strengths = append(s.Strengths, finding(FindingCostPerformance, "Excelente rendimiento de costos"))
	}
	if m.SPI > strongIndex {
		s.Strengths = append(s.Strengths, finding(FindingAheadOfSchedule, "Progreso por encima del cronograma planificado"))
	}
	if m.CompletionRate > highCompletionPct {
		s.Strengths = append(s.Strengths, finding(FindingHighCompletion, "Alta tasa de completitud de tareas"))
	}
	if m.BudgetUsedPct < efficientBudgetPct && elapsedAbove(lateTimePct) {
		s.Strengths = append(s.Strengths, finding(FindingBudgetEfficient, "Eficiencia presupuestaria"))
	}

	if m.SPI < weakIndex {
		s.Weaknesses = append(s.Weaknesses, finding(FindingBehindSchedule, "Retraso en el cronograma"))
	}
	if m.CPI < weakIndex {
		s.Weaknesses = append(s.Weaknesses, finding(FindingCostOverrun, "Sobrecosto del proyecto"))
	}
	if elapsedAbove(lowCompletionTimePct) && m.CompletionRate < lowCompletionPct {
		s.Weaknesses = append(s.Weaknesses, finding(FindingLowCompletion,
			"Baja tasa de completitud en relación al tiempo transcurrido"))
	}

	if m.TimeDeviation != nil && *m.TimeDeviation > deliveryRiskPct {
		s.Risks = append(s.Risks, finding(FindingDeliveryRisk, "Riesgo de retraso significativo en la entrega"))
	}
	if m.BudgetUsedPct > overrunRiskBudgetPct && elapsedBelow(lateTimePct) {
		s.Risks = append(s.Risks, finding(FindingOverrunRisk, "Riesgo de sobrecosto del proyecto"))
	}
	notStarted := 0
	for _, t := range tasks {
		if t.Status == model.TaskPending && t.Start != nil && !t.Start.Time.After(today.Time) {
			notStarted++
		}
	}
	if notStarted > stalledStartMin {
		s.Risks = append(s.Risks, finding(FindingStalledStart,
			"Hay %d tareas que debieron iniciarse pero siguen pendientes", notStarted))
	}

	if len(kpis) < minProjectKPIs {
		s.Opportunities = append(s.Opportunities, finding(FindingFewKPIs,
			"Definir más KPIs para un mejor seguimiento del proyecto"))
	}
	if m.TotalResources < minProjectResources {
		s.Opportunities = append(s.Opportunities, finding(FindingFewResources,
			"Considerar asignar más recursos al proyecto"))
	}
	if m.CompletionRate > nearlyDonePct && p.Status != model.ProjectFinished {
		s.Opportunities = append(s.Opportunities, finding(FindingNearlyDone,
			"El proyecto está casi completado, considerar finalizarlo formalmente"))
	}

	s.Strengths = orFiller(s.Strengths, projectStrengthFiller)
	s.Weaknesses = orFiller(s.Weaknesses, projectWeaknessFiller)
	s.Risks = orFiller(s.Risks, projectRiskFiller)
	s.Opportunities = orFiller(s.Opportunities, projectOpportunityFill)
	return s
}
