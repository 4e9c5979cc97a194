package analysis_test

import (
	"time"

	"github.com/creativeminds/analytics/internal/domain/analysis"
	"github.com/creativeminds/analytics/internal/domain/model"
)

// today is 2024-06-15 for every test in this package.
var now = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func newEngine(opts ...analysis.Option) *analysis.Engine {
	return analysis.NewEngine(append([]analysis.Option{analysis.WithClock(analysis.FixedClock(now))}, opts...)...)
}

func day(y int, m time.Month, d int) *model.Date {
	date := model.NewDate(y, m, d)
	return &date
}

func f(v float64) *float64 { return &v }

func id(v int64) *int64 { return &v }

func str(v string) *string { return &v }

func project(id int64, status model.ProjectStatus, budget, cost, progress float64) model.Project {
	return model.Project{
		ID:       id,
		Code:     &id,
		Name:     "Proyecto",
		Status:   status,
		Budget:   f(budget),
		Cost:     f(cost),
		Progress: f(progress),
	}
}

func texts(findings []analysis.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, fd := range findings {
		out = append(out, fd.Text)
	}
	return out
}

func employees(n, available int) []model.Employee {
	out := make([]model.Employee, 0, n)
	for i := 0; i < n; i++ {
		emp := model.Employee{ID: int64(i + 1), Name: "Empleado", Availability: model.Assigned}
		if i < available {
			emp.Availability = model.Available
		}
		out = append(out, emp)
	}
	return out
}
