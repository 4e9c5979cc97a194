package analysis_test

import (
	"testing"
	"time"

	"github.com/creativeminds/analytics/internal/domain/analysis"
	"github.com/creativeminds/analytics/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func finishedProjects(durations ...int) []model.Project {
	out := make([]model.Project, 0, len(durations))
	for i, d := range durations {
		p := project(int64(i+1), model.ProjectFinished, 10000, 8000, 100)
		p.Start = day(2024, time.January, 1)
		p.End = day(2024, time.January, 1+d)
		p.HourlyCost = f(50)
		p.Hours = f(160)
		out = append(out, p)
	}
	return out
}

func TestPredict(t *testing.T) {
	Convey("Given five finished projects", t, func() {
		e := newEngine()
		outcome := e.Predict(finishedProjects(10, 20, 30, 15, 25))

		Convey("Then durations are summarized", func() {
			So(outcome.Error, ShouldBeEmpty)
			So(outcome.Predictions, ShouldNotBeNil)
			d := outcome.Predictions.Duration
			So(*d.MeanDays, ShouldEqual, 20.0)
			So(*d.MinDays, ShouldEqual, 10)
			So(*d.MaxDays, ShouldEqual, 30)
		})

		Convey("Then cost estimates are averaged", func() {
			c := outcome.Predictions.Cost
			So(*c.PerProject, ShouldEqual, 8000)
			So(*c.PerHour, ShouldEqual, 50)
			So(*c.MeanHours, ShouldEqual, 160)
		})

		Convey("Then staffing falls back to the budget rule", func() {
			So(outcome.Predictions.Capacity.RecommendedResources, ShouldEqual, 2)
			So(*outcome.Predictions.Capacity.Simultaneous.HistoricalMax, ShouldEqual, 5)
		})
	})

	Convey("Given finished projects that carried resources", t, func() {
		e := newEngine()
		projects := finishedProjects(10, 10, 10, 10, 10)
		for i := range projects {
			projects[i].TotalResources = i + 1
		}

		outcome := e.Predict(projects)

		Convey("Then the mean resource count is recommended", func() {
			So(outcome.Predictions.Capacity.RecommendedResources, ShouldEqual, 3)
		})
	})

	Convey("Given only four finished projects", t, func() {
		e := newEngine()
		projects := finishedProjects(10, 20, 30, 15)
		active := project(9, model.ProjectInProgress, 1000, 100, 10)
		active.Start = day(2024, time.February, 1)
		active.End = day(2024, time.August, 1)

		outcome := e.Predict(append(projects, active))

		Convey("Then no prediction is made", func() {
			So(outcome.Predictions, ShouldBeNil)
			So(outcome.Error, ShouldEqual, "Datos insuficientes para generar predicciones confiables")
			So(outcome.Recommendation, ShouldEqual, "Se necesitan al menos 5 proyectos completados para generar predicciones")
		})
	})
}

func TestSimultaneousCapacity(t *testing.T) {
	Convey("Given two overlapping projects", t, func() {
		a := project(1, model.ProjectFinished, 0, 0, 100)
		a.Start, a.End = day(2024, time.January, 1), day(2024, time.January, 10)
		b := project(2, model.ProjectFinished, 0, 0, 100)
		b.Start, b.End = day(2024, time.January, 5), day(2024, time.January, 14)

		c := analysis.SimultaneousCapacity([]model.Project{a, b})

		Convey("Then daily overlap is measured", func() {
			So(*c.HistoricalMax, ShouldEqual, 2)
			So(*c.HistoricalMean, ShouldEqual, 1.4)
			So(c.Recommended, ShouldEqual, 2)
		})
	})

	Convey("Given six projects ending together with daily counts 1 through 6", t, func() {
		var projects []model.Project
		for k := 1; k <= 6; k++ {
			p := project(int64(k), model.ProjectFinished, 0, 0, 100)
			p.Start, p.End = day(2024, time.March, k), day(2024, time.March, 6)
			projects = append(projects, p)
		}

		c := analysis.SimultaneousCapacity(projects)

		Convey("Then the 75th percentile interpolates to 4.75 and rounds to 5", func() {
			So(*c.HistoricalMax, ShouldEqual, 6)
			So(*c.HistoricalMean, ShouldEqual, 3.5)
			So(c.Recommended, ShouldEqual, 5)
		})
	})

	Convey("Given no dated projects", t, func() {
		c := analysis.SimultaneousCapacity([]model.Project{project(1, model.ProjectPlanning, 0, 0, 0)})

		Convey("Then the default recommendation is returned", func() {
			So(c.HistoricalMax, ShouldBeNil)
			So(c.Recommended, ShouldEqual, 2)
		})
	})
}
