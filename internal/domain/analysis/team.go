package analysis

import "github.com/creativeminds/analytics/internal/domain/model"

// Team performance levels.
const (
	TeamExcellent     = "Excelente"
	TeamGood          = "Bueno"
	TeamRegular       = "Regular"
	TeamLow           = "Bajo"
	TeamNotEvaluable  = "No evaluable"
	teamMaxScore      = 12
	teamExcellentMark = 8
	teamGoodMark      = 6
	teamRegularMark   = 4
)

// Factor is one scored component of a team's performance.
type Factor struct {
	Name  string `json:"nombre" yaml:"nombre"`
	Score int    `json:"puntuacion" yaml:"puntuacion"`
}

// TeamPerformance is a team's 0-10 score, its level and the factors behind it.
type TeamPerformance struct {
	Score   float64  `json:"puntuacion" yaml:"puntuacion"`
	Level   string   `json:"nivel" yaml:"nivel"`
	Factors []Factor `json:"factores" yaml:"factores"`
}

// TeamReport is one entry of the team report.
type TeamReport struct {
	model.Team    `yaml:",inline"`
	Members       []model.TeamMember `json:"miembros" yaml:"miembros"`
	TotalProjects int                `json:"total_proyectos" yaml:"total_proyectos"`
	AvgProgress   float64            `json:"progreso_promedio" yaml:"progreso_promedio"`
	Performance   TeamPerformance    `json:"rendimiento" yaml:"rendimiento"`
}

// TeamPerformanceScore scores size, skill diversity, member availability and
// productivity from 1 to 3 each and rescales the sum to 0-10.
func TeamPerformanceScore(members []model.TeamMember, avgProgress float64) TeamPerformance {
	if len(members) == 0 {
		return TeamPerformance{Score: 0, Level: TeamNotEvaluable, Factors: []Factor{}}
	}
	factors := make([]Factor, 0, 4)

	switch n := len(members); {
	case n >= 3 && n <= 7:
		factors = append(factors, Factor{"Tamaño óptimo", 3})
	case n == 2 || (n > 7 && n <= 10):
		factors = append(factors, Factor{"Tamaño aceptable", 2})
	default:
		factors = append(factors, Factor{"Tamaño no óptimo", 1})
	}

	departments := make(map[string]struct{})
	roles := make(map[string]struct{})
	availability := 0
	for _, m := range members {
		if m.Department != nil && *m.Department != "" {
			departments[*m.Department] = struct{}{}
		}
		if m.Role != nil && *m.Role != "" {
			roles[*m.Role] = struct{}{}
		}
		switch m.Availability {
		case model.Available:
			availability += 3
		case model.Partial:
			availability += 2
		case model.Assigned:
			availability++
		}
	}

	switch diversity := len(departments) + len(roles); {
	case diversity >= 5:
		factors = append(factors, Factor{"Alta diversidad", 3})
	case diversity >= 3:
		factors = append(factors, Factor{"Diversidad media", 2})
	default:
		factors = append(factors, Factor{"Baja diversidad", 1})
	}

	switch avg := float64(availability) / float64(len(members)); {
	case avg > 2.5:
		factors = append(factors, Factor{"Alta disponibilidad", 3})
	case avg > 1.5:
		factors = append(factors, Factor{"Disponibilidad media", 2})
	default:
		factors = append(factors, Factor{"Baja disponibilidad", 1})
	}

	switch {
	case avgProgress > 75:
		factors = append(factors, Factor{"Alta productividad", 3})
	case avgProgress > 50:
		factors = append(factors, Factor{"Productividad media", 2})
	case avgProgress > 0:
		factors = append(factors, Factor{"Productividad baja", 1})
	default:
		factors = append(factors, Factor{"Sin datos de productividad", 1})
	}

	total := 0
	for _, f := range factors {
		total += f.Score
	}
	score := float64(total) / teamMaxScore * 10

	level := TeamLow
	switch {
	case score >= teamExcellentMark:
		level = TeamExcellent
	case score >= teamGoodMark:
		level = TeamGood
	case score >= teamRegularMark:
		level = TeamRegular
	}
	return TeamPerformance{Score: round(score, 1), Level: level, Factors: factors}
}

// TeamReports joins teams with their members and project stats.
func (e *Engine) TeamReports(teams []model.Team, members []model.TeamMember, stats []model.TeamProjectStat) []TeamReport {
	byTeam := make(map[int64][]model.TeamMember)
	for _, m := range members {
		byTeam[m.TeamID] = append(byTeam[m.TeamID], m)
	}
	statByTeam := make(map[int64]model.TeamProjectStat, len(stats))
	for _, s := range stats {
		statByTeam[s.TeamID] = s
	}

	out := make([]TeamReport, 0, len(teams))
	for _, t := range teams {
		r := TeamReport{Team: t, Members: byTeam[t.ID]}
		if r.Members == nil {
			r.Members = []model.TeamMember{}
		}
		if s, ok := statByTeam[t.ID]; ok {
			r.TotalProjects = s.TotalProjects
			r.AvgProgress = model.Float(s.AvgProgress)
		}
		r.Performance = TeamPerformanceScore(r.Members, r.AvgProgress)
		out = append(out, r)
	}
	return out
}
