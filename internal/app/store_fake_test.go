package service_test

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/creativeminds/analytics/internal/adapters/repository"
	"github.com/creativeminds/analytics/internal/domain/model"
)

// fakeStore serves fixed records and fails every call once err is set.
type fakeStore struct {
	projects    []model.Project
	tasks       []model.Task
	resources   []model.Resource
	kpis        []model.KPI
	employees   []model.Employee
	teams       []model.Team
	members     []model.TeamMember
	teamStats   []model.TeamProjectStat
	departments []model.DepartmentRollup
	teamRollups []model.TeamRollup

	err   error
	calls atomic.Int64
}

var _ repository.Store = (*fakeStore)(nil)

func (f *fakeStore) fail() error {
	f.calls.Add(1)
	return f.err
}

func (f *fakeStore) Projects(context.Context) ([]model.Project, error) {
	return f.projects, f.fail()
}

func (f *fakeStore) Project(_ context.Context, id int64) (model.Project, error) {
	if err := f.fail(); err != nil {
		return model.Project{}, err
	}
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Project{}, fmt.Errorf("%w: project %d", repository.ErrNotFound, id)
}

func (f *fakeStore) DatedProjects(context.Context) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range f.projects {
		if p.Start != nil && p.End != nil {
			out = append(out, p)
		}
	}
	return out, f.fail()
}

func (f *fakeStore) StartedProjects(context.Context) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range f.projects {
		if p.Start != nil {
			out = append(out, p)
		}
	}
	return out, f.fail()
}

func (f *fakeStore) Tasks(context.Context) ([]model.Task, error) { return f.tasks, f.fail() }

func (f *fakeStore) ProjectTasks(_ context.Context, id int64) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range f.tasks {
		if t.ProjectID == id {
			out = append(out, t)
		}
	}
	return out, f.fail()
}

func (f *fakeStore) Resources(context.Context) ([]model.Resource, error) {
	return f.resources, f.fail()
}

func (f *fakeStore) ProjectResources(_ context.Context, id int64) ([]model.Resource, error) {
	out := []model.Resource{}
	for _, r := range f.resources {
		if r.ProjectID != nil && *r.ProjectID == id {
			out = append(out, r)
		}
	}
	return out, f.fail()
}

func (f *fakeStore) ProjectKPIs(_ context.Context, id int64) ([]model.KPI, error) {
	out := []model.KPI{}
	for _, k := range f.kpis {
		if k.ProjectID == id {
			out = append(out, k)
		}
	}
	return out, f.fail()
}

func (f *fakeStore) Employees(context.Context) ([]model.Employee, error) {
	return f.employees, f.fail()
}

func (f *fakeStore) Teams(context.Context) ([]model.Team, error) { return f.teams, f.fail() }

func (f *fakeStore) TeamMembers(context.Context) ([]model.TeamMember, error) {
	return f.members, f.fail()
}

func (f *fakeStore) TeamProjectStats(context.Context) ([]model.TeamProjectStat, error) {
	return f.teamStats, f.fail()
}

func (f *fakeStore) DepartmentRollups(context.Context) ([]model.DepartmentRollup, error) {
	return f.departments, f.fail()
}

func (f *fakeStore) TeamRollups(context.Context) ([]model.TeamRollup, error) {
	return f.teamRollups, f.fail()
}

func (f *fakeStore) Ping(context.Context) error { return f.fail() }

func (f *fakeStore) Close() error { return nil }
