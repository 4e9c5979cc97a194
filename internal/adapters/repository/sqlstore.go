package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/creativeminds/analytics/internal/domain/model"
	"github.com/creativeminds/analytics/pkg/metrics"
)

// pgConnectionClass is the SQLSTATE class of connection exceptions.
const pgConnectionClass = "08"

// SQLStore is the Store backed by PostgreSQL or SQLite through sqlx.
type SQLStore struct {
	db           *sqlx.DB
	queryTimeout time.Duration
	maxOpenConns int
}

var _ Store = (*SQLStore)(nil)

// Open connects to the database and verifies it answers within the query
// timeout. Driver is "postgres" or "sqlite3".
func Open(ctx context.Context, driverName, dsn string, opts ...Option) (*SQLStore, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnavailable, driverName, err)
	}
	s := NewSQLStore(db, opts...)
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an existing handle.
func NewSQLStore(db *sqlx.DB, opts ...Option) *SQLStore {
	s := &SQLStore{
		db:           db,
		queryTimeout: defaultQueryTimeout,
		maxOpenConns: defaultMaxOpenConns,
	}
	for _, opt := range opts {
		opt(s)
	}
	db.SetMaxOpenConns(s.maxOpenConns)
	return s
}

// Ping checks that the database answers within the query timeout.
func (s *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrUnavailable, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Projects(ctx context.Context) ([]model.Project, error) {
	return selectAll[model.Project](ctx, s, "projects", queryProjects)
}

func (s *SQLStore) Project(ctx context.Context, id int64) (model.Project, error) {
	var p model.Project
	err := s.get(ctx, "project", &p, queryProject, id)
	return p, err
}

func (s *SQLStore) DatedProjects(ctx context.Context) ([]model.Project, error) {
	return selectAll[model.Project](ctx, s, "dated_projects", queryDatedProjects)
}

func (s *SQLStore) StartedProjects(ctx context.Context) ([]model.Project, error) {
	return selectAll[model.Project](ctx, s, "started_projects", queryStartedProjects)
}

func (s *SQLStore) Tasks(ctx context.Context) ([]model.Task, error) {
	return selectAll[model.Task](ctx, s, "tasks", queryTasks)
}

func (s *SQLStore) ProjectTasks(ctx context.Context, projectID int64) ([]model.Task, error) {
	return selectAll[model.Task](ctx, s, "project_tasks", queryProjectTasks, projectID)
}

func (s *SQLStore) Resources(ctx context.Context) ([]model.Resource, error) {
	return selectAll[model.Resource](ctx, s, "resources", queryResources)
}

func (s *SQLStore) ProjectResources(ctx context.Context, projectID int64) ([]model.Resource, error) {
	return selectAll[model.Resource](ctx, s, "project_resources", queryProjectResources, projectID)
}

func (s *SQLStore) ProjectKPIs(ctx context.Context, projectID int64) ([]model.KPI, error) {
	return selectAll[model.KPI](ctx, s, "project_kpis", queryProjectKPIs, projectID)
}

func (s *SQLStore) Employees(ctx context.Context) ([]model.Employee, error) {
	return selectAll[model.Employee](ctx, s, "employees", queryEmployees)
}

func (s *SQLStore) Teams(ctx context.Context) ([]model.Team, error) {
	return selectAll[model.Team](ctx, s, "teams", queryTeams)
}

func (s *SQLStore) TeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	return selectAll[model.TeamMember](ctx, s, "team_members", queryTeamMembers)
}

func (s *SQLStore) TeamProjectStats(ctx context.Context) ([]model.TeamProjectStat, error) {
	return selectAll[model.TeamProjectStat](ctx, s, "team_project_stats", queryTeamProjectStats)
}

func (s *SQLStore) DepartmentRollups(ctx context.Context) ([]model.DepartmentRollup, error) {
	return selectAll[model.DepartmentRollup](ctx, s, "department_rollups", queryDepartmentRollups)
}

func (s *SQLStore) TeamRollups(ctx context.Context) ([]model.TeamRollup, error) {
	return selectAll[model.TeamRollup](ctx, s, "team_rollups", queryTeamRollups)
}

// selectAll runs a bounded query and scans every row into a T.
func selectAll[T any](ctx context.Context, s *SQLStore, name, query string, args ...any) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	start := time.Now()
	out := []T{}
	err := s.db.SelectContext(ctx, &out, s.db.Rebind(query), args...)
	metrics.RecordStoreQueryLatency(name, float64(time.Since(start).Nanoseconds())/1e6)
	if err != nil {
		metrics.RecordStoreError(name)
		return nil, classify(name, err)
	}
	metrics.RecordRowsFetched(name, len(out))
	return out, nil
}

func (s *SQLStore) get(ctx context.Context, name string, dest any, query string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	start := time.Now()
	err := s.db.GetContext(ctx, dest, s.db.Rebind(query), args...)
	metrics.RecordStoreQueryLatency(name, float64(time.Since(start).Nanoseconds())/1e6)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %v", ErrNotFound, name, args)
	}
	if err != nil {
		metrics.RecordStoreError(name)
		return classify(name, err)
	}
	metrics.RecordRowsFetched(name, 1)
	return nil
}

// classify wraps a driver error with ErrUnavailable when the database could
// not be reached in time and with ErrQuery otherwise.
func classify(name string, err error) error {
	var (
		netErr *net.OpError
		pqErr  *pq.Error
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &netErr),
		errors.As(err, &pqErr) && pqErr.Code.Class() == pgConnectionClass:
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, name, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrQuery, name, err)
	}
}
