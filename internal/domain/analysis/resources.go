package analysis

import "github.com/creativeminds/analytics/internal/domain/model"

// ResourceReport is one entry of the resource report.
type ResourceReport struct {
	model.Resource `yaml:",inline"`
	CostEfficiency float64 `json:"eficiencia_costo" yaml:"eficiencia_costo"`
}

// DepartmentReport is one department of the performance rollup.
type DepartmentReport struct {
	model.DepartmentRollup `yaml:",inline"`
	BudgetEfficiency       float64 `json:"eficiencia_presupuestaria" yaml:"eficiencia_presupuestaria"`
}

// ResourceCostEfficiency is hours * hourly cost / total cost, 0 when the
// total cost is not positive.
func ResourceCostEfficiency(r model.Resource) float64 {
	total := model.Float(r.TotalCost)
	if total <= 0 {
		return 0
	}
	return model.Float(r.Hours) * model.Float(r.HourlyCost) / total
}

// ResourceReports decorates every resource with its cost efficiency.
func (e *Engine) ResourceReports(resources []model.Resource) []ResourceReport {
	out := make([]ResourceReport, 0, len(resources))
	for _, r := range resources {
		out = append(out, ResourceReport{Resource: r, CostEfficiency: ResourceCostEfficiency(r)})
	}
	return out
}

// DepartmentReports adds (1 - cost/budget) * 100 to every department
// rollup, 0 when the budget is not positive.
func (e *Engine) DepartmentReports(rollups []model.DepartmentRollup) []DepartmentReport {
	out := make([]DepartmentReport, 0, len(rollups))
	for _, d := range rollups {
		out = append(out, DepartmentReport{
			DepartmentRollup: d,
			BudgetEfficiency: efficiency(model.Float(d.TotalBudget), model.Float(d.TotalCost)),
		})
	}
	return out
}
