// Package types contains the report envelopes served by the API and the CLI.
package types

import (
	"github.com/creativeminds/analytics/internal/domain/analysis"
	"github.com/creativeminds/analytics/internal/domain/model"
)

// Report names accepted by the report service.
const (
	ReportDashboard       = "dashboard"
	ReportProjects        = "proyectos"
	ReportProject         = "proyecto"
	ReportEmployees       = "empleados"
	ReportTeams           = "equipos"
	ReportResources       = "recursos"
	ReportPerformance     = "rendimiento"
	ReportHistory         = "historicas"
	ReportPredictions     = "predicciones"
	ReportRecommendations = "recomendaciones"
)

// Liveness payload values.
const (
	HealthOK      = "OK"
	HealthMessage = "Creative Minds Analytics API está funcionando correctamente"
)

// Health is returned by the health route.
type Health struct {
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
}

// Dashboard is the organization overview.
type Dashboard struct {
	Metrics         analysis.GlobalMetrics    `json:"metricas" yaml:"metricas"`
	TopProjects     []analysis.ProjectSummary `json:"proyectos_destacados" yaml:"proyectos_destacados"`
	Analysis        analysis.OrganizationSWOT `json:"analisis" yaml:"analisis"`
	Recommendations []string                  `json:"recomendaciones" yaml:"recomendaciones"`
}

// ProjectList is every project with its summary metrics.
type ProjectList struct {
	Projects []analysis.ProjectSummary `json:"proyectos" yaml:"proyectos"`
}

// ProjectDetail is one project with its related records and analysis.
type ProjectDetail struct {
	Project         model.Project           `json:"proyecto" yaml:"proyecto"`
	Tasks           []model.Task            `json:"tareas" yaml:"tareas"`
	Resources       []model.Resource        `json:"recursos" yaml:"recursos"`
	KPIs            []model.KPI             `json:"kpis" yaml:"kpis"`
	Metrics         analysis.ProjectMetrics `json:"metricas" yaml:"metricas"`
	Analysis        analysis.ProjectSWOT    `json:"analisis" yaml:"analisis"`
	Recommendations []string                `json:"recomendaciones" yaml:"recomendaciones"`
}

// EmployeeList is the workload report.
type EmployeeList struct {
	Employees []analysis.EmployeeReport `json:"empleados" yaml:"empleados"`
}

// TeamList is the team report.
type TeamList struct {
	Teams []analysis.TeamReport `json:"equipos" yaml:"equipos"`
}

// ResourceList is the resource report.
type ResourceList struct {
	Resources []analysis.ResourceReport `json:"recursos" yaml:"recursos"`
}

// Performance is the department and team rollup.
type Performance struct {
	Departments []analysis.DepartmentReport `json:"departamentos" yaml:"departamentos"`
	Teams       []model.TeamRollup          `json:"equipos" yaml:"equipos"`
}

// History is the monthly series with its trends.
type History struct {
	Months []analysis.MonthlyMetric `json:"metricas_mensuales" yaml:"metricas_mensuales"`
	Trends analysis.Trends          `json:"tendencias" yaml:"tendencias"`
}

// Predictions is the planning forecast, or the reason none was made.
type Predictions = analysis.PredictionOutcome

// Recommendations is the organization SWOT with advice and priority areas.
type Recommendations struct {
	SWOT             analysis.OrganizationSWOT  `json:"analisis_foda" yaml:"analisis_foda"`
	Recommendations  []string                   `json:"recomendaciones" yaml:"recomendaciones"`
	ImprovementAreas []analysis.ImprovementArea `json:"areas_mejora_prioritarias" yaml:"areas_mejora_prioritarias"`
}
