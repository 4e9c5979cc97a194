package analysis

import "github.com/creativeminds/analytics/internal/domain/model"

// Workload categories.
const (
	WorkloadHigh   = "Alta"
	WorkloadMedium = "Media"
	WorkloadLow    = "Baja"
)

const (
	maxWorkload    = 10
	highWorkload   = 8
	mediumWorkload = 5
)

// Workload is an employee's 0-10 load score and its category.
type Workload struct {
	Level    int    `json:"nivel" yaml:"nivel"`
	Category string `json:"categoria" yaml:"categoria"`
}

// EmployeeReport is one entry of the employee workload report.
type EmployeeReport struct {
	model.Employee `yaml:",inline"`
	CompletionRate float64  `json:"tasa_completitud" yaml:"tasa_completitud"`
	Workload       Workload `json:"carga_trabajo" yaml:"carga_trabajo"`
}

// EmployeeWorkload scores task count, project count and declared
// availability, clamped to 10.
func EmployeeWorkload(emp model.Employee) Workload {
	level := 0

	switch tasks := emp.TotalTasks; {
	case tasks > 15:
		level += 5
	case tasks > 10:
		level += 4
	case tasks > 7:
		level += 3
	case tasks > 4:
		level += 2
	case tasks > 1:
		level++
	}

	switch projects := emp.TotalProjects; {
	case projects > 5:
		level += 5
	case projects > 3:
		level += 3
	case projects > 1:
		level++
	}

	switch emp.Availability {
	case model.Unavailable:
		level += 5
	case model.Partial:
		level += 3
	case model.Assigned:
		level += 2
	}

	level = min(level, maxWorkload)
	switch {
	case level >= highWorkload:
		return Workload{Level: level, Category: WorkloadHigh}
	case level >= mediumWorkload:
		return Workload{Level: level, Category: WorkloadMedium}
	default:
		return Workload{Level: level, Category: WorkloadLow}
	}
}

// EmployeeReports decorates every employee with completion rate and workload.
// The completion rate is a 0-1 ratio.
func (e *Engine) EmployeeReports(employees []model.Employee) []EmployeeReport {
	out := make([]EmployeeReport, 0, len(employees))
	for _, emp := range employees {
		r := EmployeeReport{Employee: emp, Workload: EmployeeWorkload(emp)}
		if emp.TotalTasks > 0 {
			r.CompletionRate = float64(emp.CompletedTasks) / float64(emp.TotalTasks)
		}
		out = append(out, r)
	}
	return out
}
