// Package model contains the typed records read from the project-management
// store and passed between the repository, the analysis engine and the API.
//
// Optional columns are pointer fields: nil means the row had NULL there.
package model

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planificacion"
	ProjectInProgress ProjectStatus = "en_progreso"
	ProjectFinished   ProjectStatus = "finalizado"
	ProjectStopped    ProjectStatus = "detenido"
)

// TaskStatus is the state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pendiente"
	TaskInProgress TaskStatus = "en_progreso"
	TaskCompleted  TaskStatus = "completada"
)

// Availability is an employee's declared availability.
type Availability string

const (
	Available   Availability = "disponible"
	Assigned    Availability = "asignado"
	Partial     Availability = "parcial"
	Unavailable Availability = "no_disponible"
)

// ResourceStatus is the state of a project resource.
type ResourceStatus string

const (
	ResourceDraft      ResourceStatus = "borrador"
	ResourceAssigned   ResourceStatus = "asignado"
	ResourceInProgress ResourceStatus = "en_progreso"
	ResourceCompleted  ResourceStatus = "completado"
)

// Project is a row of creativeminds_proyecto plus task, resource and KPI counts.
type Project struct {
	ID         int64         `db:"id" json:"id" yaml:"id"`
	Code       *int64        `db:"proyecto_id" json:"proyecto_id" yaml:"proyecto_id"`
	Name       string        `db:"nombre" json:"nombre" yaml:"nombre"`
	Status     ProjectStatus `db:"estado" json:"estado" yaml:"estado"`
	Start      *Date         `db:"fecha_inicio" json:"fecha_inicio" yaml:"fecha_inicio"`
	End        *Date         `db:"fecha_fin" json:"fecha_fin" yaml:"fecha_fin"`
	Budget     *float64      `db:"presupuesto_estimado" json:"presupuesto_estimado" yaml:"presupuesto_estimado"`
	Cost       *float64      `db:"costo_total_recursos" json:"costo_total_recursos" yaml:"costo_total_recursos"`
	Progress   *float64      `db:"porcentaje_progreso" json:"porcentaje_progreso" yaml:"porcentaje_progreso"`
	HourlyCost *float64      `db:"costo_por_hora" json:"costo_por_hora" yaml:"costo_por_hora"`
	Hours      *float64      `db:"horas_asignadas" json:"horas_asignadas" yaml:"horas_asignadas"`

	TotalTasks     int `db:"total_tareas" json:"total_tareas" yaml:"total_tareas"`
	CompletedTasks int `db:"tareas_completadas" json:"tareas_completadas" yaml:"tareas_completadas"`
	TotalResources int `db:"total_recursos" json:"total_recursos" yaml:"total_recursos"`
	TotalKPIs      int `db:"total_kpis" json:"total_kpis" yaml:"total_kpis"`
}

// Task is a row of creativeminds_tarea joined to its project name.
type Task struct {
	ID          int64      `db:"id" json:"id" yaml:"id"`
	Name        string     `db:"nombre" json:"nombre" yaml:"nombre"`
	Status      TaskStatus `db:"estado" json:"estado" yaml:"estado"`
	Start       *Date      `db:"fecha_comienzo" json:"fecha_comienzo" yaml:"fecha_comienzo"`
	End         *Date      `db:"fecha_final" json:"fecha_final" yaml:"fecha_final"`
	ProjectID   int64      `db:"proyecto_id" json:"proyecto_id" yaml:"proyecto_id"`
	AssigneeID  *int64     `db:"responsable_id" json:"responsable_id" yaml:"responsable_id"`
	ProjectName string     `db:"nombre_proyecto" json:"nombre_proyecto" yaml:"nombre_proyecto"`
}

// Resource is a row of creativeminds_recurso joined to its project name.
type Resource struct {
	ID          int64          `db:"id" json:"id" yaml:"id"`
	Name        string         `db:"nombre" json:"nombre" yaml:"nombre"`
	HourlyCost  *float64       `db:"costo_por_hora" json:"costo_por_hora" yaml:"costo_por_hora"`
	Hours       *float64       `db:"horas_asignadas" json:"horas_asignadas" yaml:"horas_asignadas"`
	TotalCost   *float64       `db:"costo_total" json:"costo_total" yaml:"costo_total"`
	Status      ResourceStatus `db:"estado" json:"estado" yaml:"estado"`
	ProjectID   *int64         `db:"proyecto_id" json:"proyecto_id" yaml:"proyecto_id"`
	ProjectName *string        `db:"nombre_proyecto" json:"nombre_proyecto" yaml:"nombre_proyecto"`
}

// KPI is a row of creativeminds_kpi.
type KPI struct {
	ID        int64    `db:"id" json:"id" yaml:"id"`
	Name      string   `db:"nombre" json:"nombre" yaml:"nombre"`
	Value     *float64 `db:"valor" json:"valor" yaml:"valor"`
	Target    *float64 `db:"objetivo" json:"objetivo" yaml:"objetivo"`
	ProjectID int64    `db:"proyecto_id" json:"proyecto_id" yaml:"proyecto_id"`
}

// Employee is a row of creativeminds_empleado plus staffing and task counts.
type Employee struct {
	ID           int64        `db:"id" json:"id" yaml:"id"`
	Code         *int64       `db:"empleado_id" json:"empleado_id" yaml:"empleado_id"`
	Name         string       `db:"nombre" json:"nombre" yaml:"nombre"`
	Availability Availability `db:"disponibilidad" json:"disponibilidad" yaml:"disponibilidad"`
	Department   *string      `db:"departamento" json:"departamento" yaml:"departamento"`
	Role         *string      `db:"puesto" json:"puesto" yaml:"puesto"`

	TotalProjects  int `db:"total_proyectos" json:"total_proyectos" yaml:"total_proyectos"`
	TotalTasks     int `db:"total_tareas" json:"total_tareas" yaml:"total_tareas"`
	CompletedTasks int `db:"tareas_completadas" json:"tareas_completadas" yaml:"tareas_completadas"`
}

// Team is a row of creativeminds_equipo with its member count.
type Team struct {
	ID          int64   `db:"id" json:"id" yaml:"id"`
	Code        *int64  `db:"equipo_id" json:"equipo_id" yaml:"equipo_id"`
	Name        string  `db:"nombre" json:"nombre" yaml:"nombre"`
	Description *string `db:"descripcion" json:"descripcion" yaml:"descripcion"`
	LeadID      *int64  `db:"responsable_id" json:"responsable_id" yaml:"responsable_id"`
	MemberCount int     `db:"num_miembros" json:"num_miembros" yaml:"num_miembros"`
}

// TeamMember is one employee of one team.
type TeamMember struct {
	TeamID       int64        `db:"equipo_id" json:"equipo_id" yaml:"equipo_id"`
	EmployeeID   int64        `db:"id" json:"id" yaml:"id"`
	Code         *int64       `db:"empleado_id" json:"empleado_id" yaml:"empleado_id"`
	Name         string       `db:"nombre" json:"nombre" yaml:"nombre"`
	Availability Availability `db:"disponibilidad" json:"disponibilidad" yaml:"disponibilidad"`
	Department   *string      `db:"departamento" json:"departamento" yaml:"departamento"`
	Role         *string      `db:"puesto" json:"puesto" yaml:"puesto"`
}

// TeamProjectStat aggregates the projects a team's members are staffed on.
type TeamProjectStat struct {
	TeamID        int64    `db:"equipo_id" json:"equipo_id" yaml:"equipo_id"`
	TotalProjects int      `db:"total_proyectos" json:"total_proyectos" yaml:"total_proyectos"`
	AvgProgress   *float64 `db:"progreso_promedio" json:"progreso_promedio" yaml:"progreso_promedio"`
}

// DepartmentRollup aggregates employees and their projects per department.
type DepartmentRollup struct {
	Department     string   `db:"departamento" json:"departamento" yaml:"departamento"`
	TotalEmployees int      `db:"total_empleados" json:"total_empleados" yaml:"total_empleados"`
	TotalProjects  int      `db:"total_proyectos" json:"total_proyectos" yaml:"total_proyectos"`
	AvgProgress    *float64 `db:"progreso_promedio" json:"progreso_promedio" yaml:"progreso_promedio"`
	TotalCost      *float64 `db:"costo_total" json:"costo_total" yaml:"costo_total"`
	TotalBudget    *float64 `db:"presupuesto_total" json:"presupuesto_total" yaml:"presupuesto_total"`
}

// TeamRollup aggregates members and their projects per team.
type TeamRollup struct {
	ID            int64    `db:"id" json:"id" yaml:"id"`
	Name          string   `db:"nombre" json:"nombre" yaml:"nombre"`
	TotalMembers  int      `db:"total_miembros" json:"total_miembros" yaml:"total_miembros"`
	TotalProjects int      `db:"total_proyectos" json:"total_proyectos" yaml:"total_proyectos"`
	AvgProgress   *float64 `db:"progreso_promedio" json:"progreso_promedio" yaml:"progreso_promedio"`
}

// Float returns *p or 0 when p is nil.
func Float(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
