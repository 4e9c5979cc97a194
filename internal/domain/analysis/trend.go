package analysis

import (
	"time"

	"github.com/creativeminds/analytics/internal/domain/model"
)

// Trend directions.
const (
	TrendIncreasing = "creciente"
	TrendDecreasing = "decreciente"
	TrendStable     = "estable"
	TrendImproving  = "mejorando"
	TrendWorsening  = "empeorando"
)

// Trend tuning.
const (
	historyWindowDays   = 365
	minTrendMonths      = 3
	movingAverageMonths = 3
	countSlopeThreshold = 0.1
	budgetSlopeLimit    = 100
	effSlopeThreshold   = 0.5
	insufficientHistory = "Se necesitan al menos 3 meses con proyectos iniciados para calcular tendencias"
)

// MonthlyMetric aggregates the projects started in one calendar month.
type MonthlyMetric struct {
	Month            string   `json:"mes" yaml:"mes"`
	Started          int      `json:"proyectos_iniciados" yaml:"proyectos_iniciados"`
	Budget           float64  `json:"presupuesto_total" yaml:"presupuesto_total"`
	Cost             float64  `json:"costo_total" yaml:"costo_total"`
	AvgProgress      *float64 `json:"progreso_promedio" yaml:"progreso_promedio"`
	BudgetEfficiency float64  `json:"eficiencia_presupuestaria" yaml:"eficiencia_presupuestaria"`
}

// Trend is the direction of one monthly series plus its last values.
type Trend struct {
	Direction string    `json:"direccion" yaml:"direccion"`
	Recent    []float64 `json:"valores_recientes" yaml:"valores_recientes"`
}

// Forecast predicts next month from a moving average.
type Forecast struct {
	MonthlyProjects int     `json:"proyectos_mensuales" yaml:"proyectos_mensuales"`
	MonthlyBudget   float64 `json:"presupuesto_mensual" yaml:"presupuesto_mensual"`
}

// Trends is the trend bundle. With fewer than three months every trend is
// nil and Sufficient is false.
type Trends struct {
	Sufficient bool      `json:"datos_suficientes" yaml:"datos_suficientes"`
	Message    string    `json:"mensaje,omitempty" yaml:"mensaje,omitempty"`
	Projects   *Trend    `json:"tendencia_proyectos" yaml:"tendencia_proyectos"`
	Budget     *Trend    `json:"tendencia_presupuesto" yaml:"tendencia_presupuesto"`
	Efficiency *Trend    `json:"tendencia_eficiencia" yaml:"tendencia_eficiencia"`
	Forecast   *Forecast `json:"prediccion_proximos_meses" yaml:"prediccion_proximos_meses"`
}

// MonthlySeries buckets the projects started in the trailing 365 days by
// start month, oldest first. Months without starts are omitted.
func (e *Engine) MonthlySeries(projects []model.Project) []MonthlyMetric {
	today := e.Today()
	from := model.DateOf(today.AddDate(0, 0, -historyWindowDays))

	buckets := make(map[string][]model.Project)
	for _, p := range projects {
		if p.Start == nil || p.Start.Before(from) {
			continue
		}
		key := p.Start.MonthKey()
		buckets[key] = append(buckets[key], p)
	}

	var out []MonthlyMetric
	month := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	for ; !month.After(last); month = month.AddDate(0, 1, 0) {
		key := month.Format("2006-01")
		group := buckets[key]
		if len(group) == 0 {
			continue
		}
		m := MonthlyMetric{Month: key, Started: len(group)}
		progress := make([]float64, 0, len(group))
		for _, p := range group {
			m.Budget += model.Float(p.Budget)
			m.Cost += model.Float(p.Cost)
			if p.Progress != nil {
				progress = append(progress, *p.Progress)
			}
		}
		m.AvgProgress = meanPtr(progress)
		m.BudgetEfficiency = efficiency(m.Budget, m.Cost)
		out = append(out, m)
	}
	return out
}

// Trends fits a least-squares line to each monthly series. A constant series
// is stable. The forecast is the mean of the last three months.
func (e *Engine) Trends(months []MonthlyMetric) Trends {
	if len(months) < minTrendMonths {
		return Trends{Sufficient: false, Message: insufficientHistory}
	}
	counts := make([]float64, len(months))
	budgets := make([]float64, len(months))
	effs := make([]float64, len(months))
	for i, m := range months {
		counts[i] = float64(m.Started)
		budgets[i] = m.Budget
		effs[i] = m.BudgetEfficiency
	}

	recentCounts := tail(counts, movingAverageMonths)
	recentBudgets := tail(budgets, movingAverageMonths)
	avgCount, _ := mean(recentCounts)
	avgBudget, _ := mean(recentBudgets)

	return Trends{
		Sufficient: true,
		Projects: &Trend{
			Direction: direction(counts, countSlopeThreshold, TrendIncreasing, TrendDecreasing),
			Recent:    recentCounts,
		},
		Budget: &Trend{
			Direction: direction(budgets, budgetSlopeLimit, TrendIncreasing, TrendDecreasing),
			Recent:    roundAll(recentBudgets, 2),
		},
		Efficiency: &Trend{
			Direction: direction(effs, effSlopeThreshold, TrendImproving, TrendWorsening),
			Recent:    roundAll(tail(effs, movingAverageMonths), 2),
		},
		Forecast: &Forecast{
			MonthlyProjects: int(round(avgCount, 0)),
			MonthlyBudget:   round(avgBudget, 2),
		},
	}
}

func direction(series []float64, threshold float64, up, down string) string {
	if !varies(series) {
		return TrendStable
	}
	switch s := slope(series); {
	case s > threshold:
		return up
	case s < -threshold:
		return down
	default:
		return TrendStable
	}
}

func tail(values []float64, n int) []float64 {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}

func roundAll(values []float64, places int) []float64 {
	for i, v := range values {
		values[i] = round(v, places)
	}
	return values
}
