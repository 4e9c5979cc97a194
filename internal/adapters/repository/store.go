// Package repository extracts analytics records from the project database.
package repository

import (
	"context"

	"github.com/creativeminds/analytics/internal/domain/model"
)

// Store provides read-only access to the project-management tables.
// Every list operation returns an empty slice, never nil, when no row matches.
type Store interface {
	// Projects returns all projects with task, resource and KPI counts.
	Projects(ctx context.Context) ([]model.Project, error)
	// Project returns a single project by row id.
	// Returns ErrNotFound if no project has that id.
	Project(ctx context.Context, id int64) (model.Project, error)
	// DatedProjects returns the projects that have both a start and an end date.
	DatedProjects(ctx context.Context) ([]model.Project, error)
	// StartedProjects returns the projects that have a start date.
	StartedProjects(ctx context.Context) ([]model.Project, error)

	// Tasks returns all tasks joined to their project name.
	Tasks(ctx context.Context) ([]model.Task, error)
	ProjectTasks(ctx context.Context, projectID int64) ([]model.Task, error)

	// Resources returns all resources joined to their project name.
	Resources(ctx context.Context) ([]model.Resource, error)
	ProjectResources(ctx context.Context, projectID int64) ([]model.Resource, error)

	ProjectKPIs(ctx context.Context, projectID int64) ([]model.KPI, error)

	// Employees returns employees with project, task and completed task counts.
	Employees(ctx context.Context) ([]model.Employee, error)

	Teams(ctx context.Context) ([]model.Team, error)
	TeamMembers(ctx context.Context) ([]model.TeamMember, error)
	TeamProjectStats(ctx context.Context) ([]model.TeamProjectStat, error)

	DepartmentRollups(ctx context.Context) ([]model.DepartmentRollup, error)
	TeamRollups(ctx context.Context) ([]model.TeamRollup, error)

	// Ping checks that the database answers.
	Ping(ctx context.Context) error
	Close() error
}
