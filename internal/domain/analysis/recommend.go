package analysis

import (
	"fmt"

	"github.com/creativeminds/analytics/internal/domain/model"
)

// Direct metric thresholds for recommendations.
const (
	budgetConsumedRatio   = 0.9
	nearlyFinishedPct     = 90
	nearDeadlineDays      = 30
	lowProgressAtDeadline = 70
	slowStartPct          = 25
	slowStartDays         = 30
	largeProjectTasks     = 10
)

// Closing best practices. The short forms replace the long ones when the
// list is truncated.
const (
	retrospectivesLong  = "Implementar reuniones retrospectivas al finalizar cada proyecto para identificar mejoras"
	knowledgeBaseLong   = "Mantener una base de conocimientos documentando lecciones aprendidas de cada proyecto"
	retrospectivesShort = "Implementar reuniones retrospectivas al finalizar cada proyecto"
	knowledgeBaseShort  = "Mantener una base de conocimientos con lecciones aprendidas"
)

// recommendationTemplates maps finding kinds to their canned advice.
var recommendationTemplates = map[FindingKind][]string{
	FindingBudgetOverrun: {
		"Implementar un proceso más riguroso de estimación de presupuestos",
		"Establecer revisiones periódicas de gastos durante la ejecución de proyectos",
	},
	FindingDelayedProjects: {
		"Revisar y ajustar el proceso de planificación de plazos",
		"Implementar alertas tempranas para proyectos en riesgo de retraso",
	},
	FindingLowProgress: {
		"Realizar revisiones semanales del progreso de proyectos críticos",
		"Considerar la implementación de metodologías ágiles para mejorar la velocidad de entrega",
	},
	FindingUnevenWorkload: {
		"Revisar la asignación de tareas para equilibrar la carga de trabajo",
		"Implementar un sistema de rotación para tareas repetitivas",
	},
	FindingLowAvailability: {
		"Evaluar la necesidad de contratar personal adicional o freelancers",
		"Priorizar proyectos y posiblemente posponer los menos críticos",
	},
	FindingWorkloadOverload: {
		"Redistribuir tareas entre el equipo para evitar el agotamiento",
		"Considerar herramientas de automatización para tareas repetitivas",
	},
	FindingHighAvailability: {
		"Aprovechar la disponibilidad para capacitar al personal en nuevas habilidades",
		"Considerar iniciar proyectos estratégicos planificados para el futuro",
	},
}

// Recommendations derives organization advice from the SWOT findings and a
// few direct metric checks, closing with two best practices. The list never
// exceeds the engine limit: when it would, the first limit-2 specific
// entries are kept and the short best practices close the list.
func (e *Engine) Recommendations(projects []model.Project, swot OrganizationSWOT) []string {
	var specific []string
	for _, bucket := range [][]Finding{swot.Weaknesses, swot.Threats, swot.Opportunities} {
		for _, f := range bucket {
			specific = append(specific, recommendationTemplates[f.Kind]...)
		}
	}

	if BudgetEfficiency(projects) < 0 {
		specific = append(specific, "Realizar un análisis detallado de costos para identificar áreas de optimización")
	}

	var consumed, withoutKPIs, nearlyDone int
	for _, p := range projects {
		if budget := model.Float(p.Budget); budget > 0 && model.Float(p.Cost) > budget*budgetConsumedRatio {
			consumed++
		}
		if p.TotalKPIs == 0 {
			withoutKPIs++
		}
		if p.Status == model.ProjectInProgress && model.Float(p.Progress) > nearlyFinishedPct {
			nearlyDone++
		}
	}
	if consumed > 0 {
		specific = append(specific, fmt.Sprintf(
			"Controlar el gasto de los %d proyectos que han consumido más del 90%% de su presupuesto", consumed))
	}
	if withoutKPIs > 0 {
		specific = append(specific, fmt.Sprintf(
			"Definir KPIs para los %d proyectos que carecen de indicadores", withoutKPIs))
	}
	if nearlyDone > 0 {
		specific = append(specific, fmt.Sprintf(
			"Verificar criterios de finalización para %d proyectos con más del 90%% de progreso", nearlyDone))
	}

	if len(specific)+2 > e.recommendationLimit {
		keep := specific[:e.recommendationLimit-2]
		out := make([]string, 0, e.recommendationLimit)
		out = append(out, keep...)
		return append(out, retrospectivesShort, knowledgeBaseShort)
	}
	return append(specific, retrospectivesLong, knowledgeBaseLong)
}

// ProjectRecommendations gives advice for a single project from its tasks
// and resources. There is always at least one entry.
func (e *Engine) ProjectRecommendations(p model.Project, tasks []model.Task, resources []model.Resource) []string {
	today := e.Today()
	var out []string

	if p.Status == model.ProjectInProgress {
		unassigned, overdue := 0, 0
		for _, t := range tasks {
			if t.AssigneeID == nil {
				unassigned++
			}
			if TaskOverdue(t, today) {
				overdue++
			}
		}
		if unassigned > 0 {
			out = append(out, fmt.Sprintf("Asignar responsables a las %d tareas sin asignar", unassigned))
		}
		if overdue > 0 {
			out = append(out, fmt.Sprintf("Priorizar las %d tareas retrasadas", overdue))
		}
	}

	if len(resources) == 0 {
		out = append(out, "Asignar recursos al proyecto para un mejor seguimiento y control")
	}

	if p.Cost != nil && p.Budget != nil && *p.Cost > *p.Budget*budgetConsumedRatio {
		out = append(out, "Reevaluar el presupuesto del proyecto, ya que está cerca o por encima del límite")
	}

	if p.End != nil && p.Progress != nil && today.DaysUntil(*p.End) < nearDeadlineDays && *p.Progress < lowProgressAtDeadline {
		out = append(out, "Considerar extender la fecha de finalización o reasignar más recursos debido al bajo progreso")
	}

	if p.Status == model.ProjectPlanning {
		out = append(out,
			"Definir hitos claros y KPIs medibles antes de iniciar el proyecto",
			"Realizar una evaluación de riesgos detallada")
	}

	if p.Progress != nil && *p.Progress < slowStartPct && p.Start != nil && p.Start.DaysUntil(today) > slowStartDays {
		out = append(out, "Evaluar los obstáculos que impiden el progreso del proyecto")
	}

	if len(tasks) > largeProjectTasks {
		out = append(out, "Considerar dividir el proyecto en fases o subproyectos para un mejor seguimiento")
	}

	if len(out) == 0 {
		out = append(out, "El proyecto parece estar avanzando adecuadamente. Mantener el monitoreo regular")
	}
	return out
}
