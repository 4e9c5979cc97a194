package analysis_test

import (
	"testing"
	"time"

	"github.com/creativeminds/analytics/internal/domain/analysis"
	"github.com/creativeminds/analytics/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func months(counts, budgets, effs []float64) []analysis.MonthlyMetric {
	out := make([]analysis.MonthlyMetric, len(counts))
	for i := range counts {
		out[i] = analysis.MonthlyMetric{
			Month:            time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Started:          int(counts[i]),
			Budget:           budgets[i],
			BudgetEfficiency: effs[i],
		}
	}
	return out
}

func TestMonthlySeries(t *testing.T) {
	Convey("Given projects started inside and outside the window", t, func() {
		e := newEngine()
		a := project(1, model.ProjectInProgress, 1000, 500, 40)
		a.Start = day(2024, time.January, 10)
		b := project(2, model.ProjectInProgress, 3000, 1500, 60)
		b.Start = day(2024, time.January, 20)
		c := project(3, model.ProjectPlanning, 2000, 0, 0)
		c.Start = day(2024, time.March, 5)
		old := project(4, model.ProjectFinished, 1000, 1000, 100)
		old.Start = day(2023, time.January, 1)
		undated := project(5, model.ProjectPlanning, 1000, 0, 0)

		series := e.MonthlySeries([]model.Project{c, a, old, b, undated})

		Convey("Then only populated months in the window appear, oldest first", func() {
			So(series, ShouldHaveLength, 2)
			So(series[0].Month, ShouldEqual, "2024-01")
			So(series[1].Month, ShouldEqual, "2024-03")
		})

		Convey("Then each month aggregates its projects", func() {
			So(series[0].Started, ShouldEqual, 2)
			So(series[0].Budget, ShouldEqual, 4000)
			So(series[0].Cost, ShouldEqual, 2000)
			So(*series[0].AvgProgress, ShouldEqual, 50)
			So(series[0].BudgetEfficiency, ShouldEqual, 50)
		})
	})
}

func TestTrends(t *testing.T) {
	Convey("Given fewer than three months", t, func() {
		e := newEngine()
		tr := e.Trends(months([]float64{1, 2}, []float64{100, 200}, []float64{0, 0}))

		Convey("Then the data is reported as insufficient", func() {
			So(tr.Sufficient, ShouldBeFalse)
			So(tr.Message, ShouldEqual, "Se necesitan al menos 3 meses con proyectos iniciados para calcular tendencias")
			So(tr.Projects, ShouldBeNil)
			So(tr.Forecast, ShouldBeNil)
		})
	})

	Convey("Given steadily growing months", t, func() {
		e := newEngine()
		tr := e.Trends(months(
			[]float64{1, 2, 3, 4},
			[]float64{1000, 2000, 3000, 4000},
			[]float64{10, 20, 30, 40},
		))

		Convey("Then every series trends upward", func() {
			So(tr.Sufficient, ShouldBeTrue)
			So(tr.Projects.Direction, ShouldEqual, analysis.TrendIncreasing)
			So(tr.Budget.Direction, ShouldEqual, analysis.TrendIncreasing)
			So(tr.Efficiency.Direction, ShouldEqual, analysis.TrendImproving)
		})

		Convey("Then the last three values and their mean are reported", func() {
			So(tr.Projects.Recent, ShouldResemble, []float64{2, 3, 4})
			So(tr.Budget.Recent, ShouldResemble, []float64{2000, 3000, 4000})
			So(*tr.Forecast, ShouldResemble, analysis.Forecast{MonthlyProjects: 3, MonthlyBudget: 3000})
		})
	})

	Convey("Given constant and shrinking months", t, func() {
		e := newEngine()
		tr := e.Trends(months(
			[]float64{2, 2, 2},
			[]float64{3000, 2000, 1000},
			[]float64{10, 5, 0},
		))

		Convey("Then a constant series is stable", func() {
			So(tr.Projects.Direction, ShouldEqual, analysis.TrendStable)
		})

		Convey("Then falling series trend down", func() {
			So(tr.Budget.Direction, ShouldEqual, analysis.TrendDecreasing)
			So(tr.Efficiency.Direction, ShouldEqual, analysis.TrendWorsening)
		})
	})
}
