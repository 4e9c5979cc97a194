// Package service assembles analytics reports: it extracts records from the
// store, runs them through the analysis engine and returns the envelopes
// served by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/creativeminds/analytics/internal/adapters/repository"
	"github.com/creativeminds/analytics/internal/domain/analysis"
	"github.com/creativeminds/analytics/internal/domain/model"
	"github.com/creativeminds/analytics/internal/domain/types"
	"github.com/creativeminds/analytics/pkg/logger"
	"github.com/creativeminds/analytics/pkg/metrics"
)

// Service implements the report dependencies of the HTTP API.
type Service struct {
	store  repository.Store
	engine *analysis.Engine
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record source.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine sets the analysis engine.
func WithEngine(engine *analysis.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without WithEngine it uses an engine on the
// system clock.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = analysis.NewEngine()
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// Health reports liveness. It does not touch the database.
func (s *Service) Health(_ context.Context) types.Health {
	return types.Health{Status: types.HealthOK, Message: types.HealthMessage}
}

// Ready checks that the store answers.
func (s *Service) Ready(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	return s.store.Ping(ctx)
}

// Dashboard returns global metrics, the best projects, the organization
// SWOT and its recommendations.
func (s *Service) Dashboard(ctx context.Context) (types.Dashboard, error) {
	var out types.Dashboard
	err := s.run(ctx, types.ReportDashboard, func(ctx context.Context) (int, error) {
		projects, tasks, employees, err := s.portfolio(ctx)
		if err != nil {
			return 0, err
		}
		swot := s.engine.OrganizationSWOT(projects, tasks, employees)
		out = types.Dashboard{
			Metrics:         s.engine.GlobalMetrics(projects, tasks, employees),
			TopProjects:     s.engine.ProjectSummaries(s.engine.TopProjects(projects)),
			Analysis:        swot,
			Recommendations: s.engine.Recommendations(projects, swot),
		}
		return len(projects) + len(tasks) + len(employees), nil
	})
	return out, err
}

// Projects returns every project with efficiency, health and days remaining.
func (s *Service) Projects(ctx context.Context) (types.ProjectList, error) {
	var out types.ProjectList
	err := s.run(ctx, types.ReportProjects, func(ctx context.Context) (int, error) {
		projects, err := s.store.Projects(ctx)
		if err != nil {
			return 0, err
		}
		out.Projects = s.engine.ProjectSummaries(projects)
		return len(projects), nil
	})
	return out, err
}

// Project returns one project with its tasks, resources, KPIs and analysis.
// The error wraps repository.ErrNotFound when the id is unknown.
func (s *Service) Project(ctx context.Context, id int64) (types.ProjectDetail, error) {
	var out types.ProjectDetail
	err := s.run(ctx, types.ReportProject, func(ctx context.Context) (int, error) {
		p, err := s.store.Project(ctx, id)
		if err != nil {
			return 0, err
		}

		var (
			tasks     []model.Task
			resources []model.Resource
			kpis      []model.KPI
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { tasks, err = s.store.ProjectTasks(gctx, id); return err })
		g.Go(func() (err error) { resources, err = s.store.ProjectResources(gctx, id); return err })
		g.Go(func() (err error) { kpis, err = s.store.ProjectKPIs(gctx, id); return err })
		if err := g.Wait(); err != nil {
			return 0, err
		}

		out = types.ProjectDetail{
			Project:         p,
			Tasks:           tasks,
			Resources:       resources,
			KPIs:            kpis,
			Metrics:         s.engine.ProjectMetrics(p, tasks, resources, kpis),
			Analysis:        s.engine.ProjectSWOT(p, tasks, resources, kpis),
			Recommendations: s.engine.ProjectRecommendations(p, tasks, resources),
		}
		return 1 + len(tasks) + len(resources) + len(kpis), nil
	})
	return out, err
}

// Employees returns the workload report.
func (s *Service) Employees(ctx context.Context) (types.EmployeeList, error) {
	var out types.EmployeeList
	err := s.run(ctx, types.ReportEmployees, func(ctx context.Context) (int, error) {
		employees, err := s.store.Employees(ctx)
		if err != nil {
			return 0, err
		}
		out.Employees = s.engine.EmployeeReports(employees)
		return len(employees), nil
	})
	return out, err
}

// Teams returns every team with its members, project stats and performance.
func (s *Service) Teams(ctx context.Context) (types.TeamList, error) {
	var out types.TeamList
	err := s.run(ctx, types.ReportTeams, func(ctx context.Context) (int, error) {
		var (
			teams   []model.Team
			members []model.TeamMember
			stats   []model.TeamProjectStat
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { teams, err = s.store.Teams(gctx); return err })
		g.Go(func() (err error) { members, err = s.store.TeamMembers(gctx); return err })
		g.Go(func() (err error) { stats, err = s.store.TeamProjectStats(gctx); return err })
		if err := g.Wait(); err != nil {
			return 0, err
		}
		out.Teams = s.engine.TeamReports(teams, members, stats)
		return len(teams) + len(members) + len(stats), nil
	})
	return out, err
}

// Resources returns every resource with its cost efficiency.
func (s *Service) Resources(ctx context.Context) (types.ResourceList, error) {
	var out types.ResourceList
	err := s.run(ctx, types.ReportResources, func(ctx context.Context) (int, error) {
		resources, err := s.store.Resources(ctx)
		if err != nil {
			return 0, err
		}
		out.Resources = s.engine.ResourceReports(resources)
		return len(resources), nil
	})
	return out, err
}

// Performance returns the department and team rollups.
func (s *Service) Performance(ctx context.Context) (types.Performance, error) {
	var out types.Performance
	err := s.run(ctx, types.ReportPerformance, func(ctx context.Context) (int, error) {
		var (
			departments []model.DepartmentRollup
			teams       []model.TeamRollup
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { departments, err = s.store.DepartmentRollups(gctx); return err })
		g.Go(func() (err error) { teams, err = s.store.TeamRollups(gctx); return err })
		if err := g.Wait(); err != nil {
			return 0, err
		}
		out = types.Performance{Departments: s.engine.DepartmentReports(departments), Teams: teams}
		return len(departments) + len(teams), nil
	})
	return out, err
}

// History returns the monthly series of the last year and its trends.
func (s *Service) History(ctx context.Context) (types.History, error) {
	var out types.History
	err := s.run(ctx, types.ReportHistory, func(ctx context.Context) (int, error) {
		projects, err := s.store.StartedProjects(ctx)
		if err != nil {
			return 0, err
		}
		months := s.engine.MonthlySeries(projects)
		if months == nil {
			months = []analysis.MonthlyMetric{}
		}
		out = types.History{Months: months, Trends: s.engine.Trends(months)}
		return len(projects), nil
	})
	return out, err
}

// Predictions returns the planning forecast. Too little history is reported
// in the payload, not as an error.
func (s *Service) Predictions(ctx context.Context) (types.Predictions, error) {
	var out types.Predictions
	err := s.run(ctx, types.ReportPredictions, func(ctx context.Context) (int, error) {
		projects, err := s.store.DatedProjects(ctx)
		if err != nil {
			return 0, err
		}
		out = s.engine.Predict(projects)
		return len(projects), nil
	})
	return out, err
}

// Recommendations returns the organization SWOT, its advice and the
// priority improvement areas.
func (s *Service) Recommendations(ctx context.Context) (types.Recommendations, error) {
	var out types.Recommendations
	err := s.run(ctx, types.ReportRecommendations, func(ctx context.Context) (int, error) {
		projects, tasks, employees, err := s.portfolio(ctx)
		if err != nil {
			return 0, err
		}
		swot := s.engine.OrganizationSWOT(projects, tasks, employees)
		out = types.Recommendations{
			SWOT:             swot,
			Recommendations:  s.engine.Recommendations(projects, swot),
			ImprovementAreas: s.engine.ImprovementAreas(projects, tasks, employees),
		}
		return len(projects) + len(tasks) + len(employees), nil
	})
	return out, err
}

// Report renders a report by name. The id is used by the project report only.
func (s *Service) Report(ctx context.Context, name string, id int64) (any, error) {
	switch name {
	case types.ReportDashboard:
		return s.Dashboard(ctx)
	case types.ReportProjects:
		return s.Projects(ctx)
	case types.ReportProject:
		return s.Project(ctx, id)
	case types.ReportEmployees:
		return s.Employees(ctx)
	case types.ReportTeams:
		return s.Teams(ctx)
	case types.ReportResources:
		return s.Resources(ctx)
	case types.ReportPerformance:
		return s.Performance(ctx)
	case types.ReportHistory:
		return s.History(ctx)
	case types.ReportPredictions:
		return s.Predictions(ctx)
	case types.ReportRecommendations:
		return s.Recommendations(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReport, name)
	}
}

// ReportNames lists the names accepted by Report.
func ReportNames() []string {
	return []string{
		types.ReportDashboard, types.ReportProjects, types.ReportProject, types.ReportEmployees,
		types.ReportTeams, types.ReportResources, types.ReportPerformance, types.ReportHistory,
		types.ReportPredictions, types.ReportRecommendations,
	}
}

// portfolio fetches projects, tasks and employees concurrently.
func (s *Service) portfolio(ctx context.Context) ([]model.Project, []model.Task, []model.Employee, error) {
	var (
		projects  []model.Project
		tasks     []model.Task
		employees []model.Employee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { projects, err = s.store.Projects(gctx); return err })
	g.Go(func() (err error) { tasks, err = s.store.Tasks(gctx); return err })
	g.Go(func() (err error) { employees, err = s.store.Employees(gctx); return err })
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return projects, tasks, employees, nil
}

// run times one report, records its metrics and logs the outcome.
func (s *Service) run(ctx context.Context, name string, build func(context.Context) (int, error)) error {
	if s.store == nil {
		return fmt.Errorf("%w: %s: %w", ErrReport, name, ErrNoStore)
	}
	start := time.Now()
	rows, err := build(ctx)
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
	metrics.RecordReportDuration(name, elapsed)

	if err != nil {
		kind := errorType(err)
		metrics.RecordReportError(name)
		metrics.RecordErrorByComponent("service", kind)
		log := s.logger.Error
		if kind == "not_found" {
			log = s.logger.Warn
		}
		log(ctx, "report failed",
			logger.String("report", name),
			logger.Float64("duration_ms", elapsed),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %s: %w", ErrReport, name, err)
	}

	metrics.RecordReportGenerated(name)
	s.logger.Info(ctx, "report generated",
		logger.String("report", name),
		logger.Int("rows", rows),
		logger.Float64("duration_ms", elapsed),
	)
	return nil
}
