package analysis_test

import (
	"testing"
	"time"

	"github.com/creativeminds/analytics/internal/domain/analysis"
	"github.com/creativeminds/analytics/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHealth(t *testing.T) {
	Convey("Given an engine fixed on 2024-06-15", t, func() {
		e := newEngine()

		Convey("When cost exceeds a 1000 budget by 200 and the project is not overdue", func() {
			p := project(1, model.ProjectInProgress, 1000, 1200, 50)

			a := e.Assess(p)

			Convey("Then the budget deviation is 20 and the project is at risk", func() {
				So(a.BudgetDeviation, ShouldAlmostEqual, 20)
				So(a.Overdue, ShouldBeFalse)
				So(a.Label, ShouldEqual, analysis.HealthAtRisk)
			})
		})

		Convey("When the project is past its end date and unfinished", func() {
			p := project(2, model.ProjectInProgress, 1000, 100, 99)
			p.Start = day(2024, time.January, 1)
			p.End = day(2024, time.June, 14)

			Convey("Then it is critical even with good numbers", func() {
				So(e.Health(p), ShouldEqual, analysis.HealthCritical)
			})
		})

		Convey("When progress lags the elapsed schedule", func() {
			p := project(3, model.ProjectInProgress, 1000, 500, 0)
			p.Start = day(2024, time.June, 5)
			p.End = day(2024, time.June, 25)

			a := e.Assess(p)

			Convey("Then expected progress interpolates linearly", func() {
				So(a.ScheduleDeviation, ShouldAlmostEqual, -50)
				So(a.Label, ShouldEqual, analysis.HealthAtRisk)
			})
		})

		Convey("When deviations fall between 10 and 20 points", func() {
			p := project(4, model.ProjectInProgress, 1000, 1150, 50)

			Convey("Then the project is regular", func() {
				So(e.Health(p), ShouldEqual, analysis.HealthRegular)
			})
		})

		Convey("When dates are missing and the budget is on track", func() {
			p := project(5, model.ProjectInProgress, 1000, 800, 10)

			a := e.Assess(p)

			Convey("Then the schedule deviation is 0 and the project is good", func() {
				So(a.ScheduleDeviation, ShouldEqual, 0)
				So(a.Label, ShouldEqual, analysis.HealthGood)
			})
		})

		Convey("When a finished project is past its end date", func() {
			p := project(6, model.ProjectFinished, 1000, 900, 100)
			p.Start = day(2023, time.January, 1)
			p.End = day(2023, time.December, 31)

			Convey("Then it is not critical", func() {
				So(e.Health(p), ShouldEqual, analysis.HealthGood)
			})
		})

		Convey("When budget or progress are missing", func() {
			noBudget := model.Project{ID: 7, Status: model.ProjectInProgress, Progress: f(40)}
			noProgress := model.Project{ID: 8, Status: model.ProjectInProgress, Budget: f(1000)}

			Convey("Then the health is undetermined", func() {
				So(e.Health(noBudget), ShouldEqual, analysis.HealthUndetermined)
				So(e.Health(noProgress), ShouldEqual, analysis.HealthUndetermined)
			})
		})

		Convey("When an overdue unfinished project lacks budget or progress", func() {
			noBudget := model.Project{ID: 10, Status: model.ProjectInProgress, Progress: f(10), End: day(2024, time.January, 1)}
			noProgress := model.Project{ID: 11, Status: model.ProjectInProgress, Budget: f(1000), End: day(2024, time.January, 1)}

			Convey("Then being overdue still makes it critical", func() {
				a := e.Assess(noBudget)
				So(a.Label, ShouldEqual, analysis.HealthCritical)
				So(a.Overdue, ShouldBeTrue)
				So(a.BudgetDeviation, ShouldEqual, 0)
				So(e.Health(noProgress), ShouldEqual, analysis.HealthCritical)
			})
		})

		Convey("When the same project is classified repeatedly", func() {
			p := project(9, model.ProjectInProgress, 2000, 2300, 35)
			p.Start = day(2024, time.March, 1)
			p.End = day(2024, time.September, 1)
			first := e.Health(p)

			Convey("Then the label never changes", func() {
				for i := 0; i < 10; i++ {
					So(e.Health(p), ShouldEqual, first)
				}
			})
		})
	})
}

func TestProjectMetrics(t *testing.T) {
	Convey("Given a project halfway through its schedule", t, func() {
		e := newEngine()
		p := project(1, model.ProjectInProgress, 10000, 4000, 40)
		p.Start = day(2024, time.June, 5)
		p.End = day(2024, time.June, 25)
		tasks := []model.Task{
			{ID: 1, Status: model.TaskCompleted},
			{ID: 2, Status: model.TaskInProgress},
			{ID: 3, Status: model.TaskPending},
			{ID: 4, Status: model.TaskCompleted},
		}
		resources := []model.Resource{{ID: 1}, {ID: 2}}

		m := e.ProjectMetrics(p, tasks, resources, nil)

		Convey("Then task counts and completion are computed", func() {
			So(m.TotalTasks, ShouldEqual, 4)
			So(m.CompletedTasks, ShouldEqual, 2)
			So(m.PendingTasks, ShouldEqual, 1)
			So(m.InProgressTasks, ShouldEqual, 1)
			So(m.CompletionRate, ShouldAlmostEqual, 50)
		})

		Convey("Then time and budget usage are computed", func() {
			So(*m.TotalDays, ShouldEqual, 20)
			So(*m.ElapsedDays, ShouldEqual, 10)
			So(*m.ElapsedTimePct, ShouldAlmostEqual, 50)
			So(*m.TimeDeviation, ShouldAlmostEqual, 10)
			So(m.BudgetUsedPct, ShouldAlmostEqual, 40)
			So(m.RemainingBudget, ShouldAlmostEqual, 6000)
		})

		Convey("Then earned-value indices follow", func() {
			So(m.PlannedValue, ShouldAlmostEqual, 5000)
			So(m.EarnedValue, ShouldAlmostEqual, 4000)
			So(m.SPI, ShouldAlmostEqual, 0.8)
			So(m.CPI, ShouldAlmostEqual, 1.0)
			So(m.TotalResources, ShouldEqual, 2)
			So(m.TotalKPIs, ShouldEqual, 0)
		})
	})

	Convey("Given a project without dates or cost", t, func() {
		m := newEngine().ProjectMetrics(model.Project{ID: 2, Budget: f(1000), Progress: f(10)}, nil, nil, nil)

		Convey("Then time metrics are null and indices are 0", func() {
			So(m.TotalDays, ShouldBeNil)
			So(m.ElapsedTimePct, ShouldBeNil)
			So(m.TimeDeviation, ShouldBeNil)
			So(m.PlannedValue, ShouldEqual, 0)
			So(m.SPI, ShouldEqual, 0)
			So(m.CPI, ShouldEqual, 0)
			So(m.CompletionRate, ShouldEqual, 0)
		})
	})
}
