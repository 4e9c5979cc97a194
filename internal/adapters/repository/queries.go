package repository

// Counts use correlated subqueries so that joining several child tables
// does not multiply rows.
const projectColumns = `
	p.id, p.proyecto_id, COALESCE(p.nombre, '') AS nombre, COALESCE(p.estado, '') AS estado,
	p.fecha_inicio, p.fecha_fin, p.presupuesto_estimado, p.costo_total_recursos,
	p.porcentaje_progreso, p.costo_por_hora, p.horas_asignadas,
	(SELECT COUNT(*) FROM creativeminds_tarea t WHERE t.proyecto_id = p.id) AS total_tareas,
	(SELECT COALESCE(SUM(CASE WHEN t.estado = 'completada' THEN 1 ELSE 0 END), 0)
		FROM creativeminds_tarea t WHERE t.proyecto_id = p.id) AS tareas_completadas,
	(SELECT COUNT(*) FROM creativeminds_recurso r WHERE r.proyecto_id = p.id) AS total_recursos,
	(SELECT COUNT(*) FROM creativeminds_kpi k WHERE k.proyecto_id = p.id) AS total_kpis`

const (
	queryProjects = `SELECT` + projectColumns + `
	FROM creativeminds_proyecto p
	ORDER BY p.id`

	queryProject = `SELECT` + projectColumns + `
	FROM creativeminds_proyecto p
	WHERE p.id = ?`

	queryDatedProjects = `SELECT` + projectColumns + `
	FROM creativeminds_proyecto p
	WHERE p.fecha_inicio IS NOT NULL AND p.fecha_fin IS NOT NULL
	ORDER BY p.id`

	queryStartedProjects = `SELECT` + projectColumns + `
	FROM creativeminds_proyecto p
	WHERE p.fecha_inicio IS NOT NULL
	ORDER BY p.fecha_inicio, p.id`
)

const taskColumns = `
	t.id, COALESCE(t.nombre, '') AS nombre, COALESCE(t.estado, '') AS estado,
	t.fecha_comienzo, t.fecha_final, t.proyecto_id, t.responsable_id,
	COALESCE(p.nombre, '') AS nombre_proyecto
	FROM creativeminds_tarea t
	JOIN creativeminds_proyecto p ON p.id = t.proyecto_id`

const (
	queryTasks        = `SELECT` + taskColumns + ` ORDER BY t.id`
	queryProjectTasks = `SELECT` + taskColumns + ` WHERE t.proyecto_id = ? ORDER BY t.id`
)

const resourceColumns = `
	r.id, COALESCE(r.nombre, '') AS nombre, r.costo_por_hora, r.horas_asignadas, r.costo_total,
	COALESCE(r.estado, '') AS estado, r.proyecto_id, p.nombre AS nombre_proyecto
	FROM creativeminds_recurso r
	LEFT JOIN creativeminds_proyecto p ON p.id = r.proyecto_id`

const (
	queryResources        = `SELECT` + resourceColumns + ` ORDER BY r.id`
	queryProjectResources = `SELECT` + resourceColumns + ` WHERE r.proyecto_id = ? ORDER BY r.id`
)

const queryProjectKPIs = `
	SELECT k.id, COALESCE(k.nombre, '') AS nombre, k.valor, k.objetivo, k.proyecto_id
	FROM creativeminds_kpi k
	WHERE k.proyecto_id = ?
	ORDER BY k.id`

const queryEmployees = `
	SELECT
		e.id, e.empleado_id, COALESCE(e.nombre, '') AS nombre,
		COALESCE(e.disponibilidad, '') AS disponibilidad, e.departamento, e.puesto,
		(SELECT COUNT(DISTINCT pe.proyecto_id) FROM creativeminds_proyecto_empleado_rel pe
			WHERE pe.empleado_id = e.id) AS total_proyectos,
		(SELECT COUNT(*) FROM creativeminds_tarea t WHERE t.responsable_id = e.id) AS total_tareas,
		(SELECT COALESCE(SUM(CASE WHEN t.estado = 'completada' THEN 1 ELSE 0 END), 0)
			FROM creativeminds_tarea t WHERE t.responsable_id = e.id) AS tareas_completadas
	FROM creativeminds_empleado e
	ORDER BY e.id`

const queryTeams = `
	SELECT
		eq.id, eq.equipo_id, COALESCE(eq.nombre, '') AS nombre, eq.descripcion, eq.responsable_id,
		(SELECT COUNT(DISTINCT ee.empleado_id) FROM creativeminds_equipo_empleado_rel ee
			WHERE ee.equipo_id = eq.id) AS num_miembros
	FROM creativeminds_equipo eq
	ORDER BY eq.id`

const queryTeamMembers = `
	SELECT
		ee.equipo_id, e.id, e.empleado_id, COALESCE(e.nombre, '') AS nombre,
		COALESCE(e.disponibilidad, '') AS disponibilidad, e.departamento, e.puesto
	FROM creativeminds_equipo_empleado_rel ee
	JOIN creativeminds_empleado e ON e.id = ee.empleado_id
	ORDER BY ee.equipo_id, e.id`

const queryTeamProjectStats = `
	SELECT
		ee.equipo_id,
		COUNT(DISTINCT pe.proyecto_id) AS total_proyectos,
		AVG(p.porcentaje_progreso) AS progreso_promedio
	FROM creativeminds_equipo_empleado_rel ee
	JOIN creativeminds_proyecto_empleado_rel pe ON pe.empleado_id = ee.empleado_id
	JOIN creativeminds_proyecto p ON p.id = pe.proyecto_id
	GROUP BY ee.equipo_id
	ORDER BY ee.equipo_id`

// Cost and budget sums follow the staffing join, so a project counts once
// per staffed employee of the department.
const queryDepartmentRollups = `
	SELECT
		e.departamento,
		COUNT(DISTINCT e.id) AS total_empleados,
		COUNT(DISTINCT p.id) AS total_proyectos,
		AVG(p.porcentaje_progreso) AS progreso_promedio,
		SUM(p.costo_total_recursos) AS costo_total,
		SUM(p.presupuesto_estimado) AS presupuesto_total
	FROM creativeminds_empleado e
	LEFT JOIN creativeminds_proyecto_empleado_rel pe ON pe.empleado_id = e.id
	LEFT JOIN creativeminds_proyecto p ON p.id = pe.proyecto_id
	WHERE e.departamento IS NOT NULL
	GROUP BY e.departamento
	ORDER BY e.departamento`

const queryTeamRollups = `
	SELECT
		eq.id, COALESCE(eq.nombre, '') AS nombre,
		COUNT(DISTINCT em.id) AS total_miembros,
		COUNT(DISTINCT p.id) AS total_proyectos,
		AVG(p.porcentaje_progreso) AS progreso_promedio
	FROM creativeminds_equipo eq
	LEFT JOIN creativeminds_equipo_empleado_rel ee ON ee.equipo_id = eq.id
	LEFT JOIN creativeminds_empleado em ON em.id = ee.empleado_id
	LEFT JOIN creativeminds_proyecto_empleado_rel pe ON pe.empleado_id = em.id
	LEFT JOIN creativeminds_proyecto p ON p.id = pe.proyecto_id
	GROUP BY eq.id, eq.nombre
	ORDER BY eq.id`
