package analysis

import "github.com/creativeminds/analytics/internal/domain/model"

// Prediction tuning.
const (
	minFinishedForPrediction = 5
	defaultCapacity          = 2
	defaultResources         = 2
	daysPerResource          = 15
	budgetPerResource        = 5000
	capacityPercentile       = 75

	insufficientPredictionError  = "Datos insuficientes para generar predicciones confiables"
	insufficientPredictionAdvice = "Se necesitan al menos 5 proyectos completados para generar predicciones"
)

// DurationEstimate summarizes finished project durations in days.
type DurationEstimate struct {
	MeanDays *float64 `json:"promedio_dias" yaml:"promedio_dias"`
	MinDays  *float64 `json:"minima_dias" yaml:"minima_dias"`
	MaxDays  *float64 `json:"maxima_dias" yaml:"maxima_dias"`
}

// CostEstimate summarizes finished project costs.
type CostEstimate struct {
	PerProject *float64 `json:"promedio_por_proyecto" yaml:"promedio_por_proyecto"`
	PerHour    *float64 `json:"promedio_por_hora" yaml:"promedio_por_hora"`
	MeanHours  *float64 `json:"horas_promedio" yaml:"horas_promedio"`
}

// Capacity is the historical count of simultaneously active projects.
type Capacity struct {
	HistoricalMax  *int     `json:"maximo_historico" yaml:"maximo_historico"`
	HistoricalMean *float64 `json:"promedio_historico" yaml:"promedio_historico"`
	Recommended    int      `json:"recomendado" yaml:"recomendado"`
}

// OptimalCapacity pairs simultaneous-project capacity with staffing advice.
type OptimalCapacity struct {
	Simultaneous         Capacity `json:"proyectos_simultáneos" yaml:"proyectos_simultáneos"`
	RecommendedResources float64  `json:"recursos_recomendados" yaml:"recursos_recomendados"`
}

// Predictions is the planning forecast for new projects.
type Predictions struct {
	Duration DurationEstimate `json:"duracion_estimada" yaml:"duracion_estimada"`
	Cost     CostEstimate     `json:"costo_estimado" yaml:"costo_estimado"`
	Capacity OptimalCapacity  `json:"capacidad_optima" yaml:"capacidad_optima"`
}

// PredictionOutcome is either a forecast or the reason none was made.
// Insufficient data is an expected condition, not an error.
type PredictionOutcome struct {
	Predictions    *Predictions `json:"predicciones,omitempty" yaml:"predicciones,omitempty"`
	Error          string       `json:"error,omitempty" yaml:"error,omitempty"`
	Recommendation string       `json:"recomendacion,omitempty" yaml:"recomendacion,omitempty"`
}

// Predict forecasts duration, cost and capacity from projects with both
// dates. At least five of them must be finished.
func (e *Engine) Predict(dated []model.Project) PredictionOutcome {
	var finished []model.Project
	for _, p := range dated {
		if p.Status == model.ProjectFinished && p.Start != nil && p.End != nil {
			finished = append(finished, p)
		}
	}
	if len(finished) < minFinishedForPrediction {
		return PredictionOutcome{Error: insufficientPredictionError, Recommendation: insufficientPredictionAdvice}
	}

	durations := make([]float64, 0, len(finished))
	var costs, rates, hours, budgets []float64
	for _, p := range finished {
		durations = append(durations, float64(p.Start.DaysUntil(*p.End)))
		if p.Cost != nil {
			costs = append(costs, *p.Cost)
		}
		if p.HourlyCost != nil {
			rates = append(rates, *p.HourlyCost)
		}
		if p.Hours != nil {
			hours = append(hours, *p.Hours)
		}
		if p.Budget != nil {
			budgets = append(budgets, *p.Budget)
		}
	}

	lo, hi := minMax(durations)
	meanDuration, _ := mean(durations)
	pred := &Predictions{
		Duration: DurationEstimate{
			MeanDays: model.Ptr(round(meanDuration, 1)),
			MinDays:  model.Ptr(round(lo, 1)),
			MaxDays:  model.Ptr(round(hi, 1)),
		},
		Cost: CostEstimate{
			PerProject: roundPtr(meanPtr(costs), 2),
			PerHour:    roundPtr(meanPtr(rates), 2),
			MeanHours:  roundPtr(meanPtr(hours), 2),
		},
		Capacity: OptimalCapacity{
			Simultaneous:         SimultaneousCapacity(dated),
			RecommendedResources: recommendedResources(finished, meanDuration, budgets),
		},
	}
	return PredictionOutcome{Predictions: pred}
}

// SimultaneousCapacity counts active projects for every day between the
// earliest start and the latest end. The recommendation is the 75th
// percentile of the daily counts, at least 1.
func SimultaneousCapacity(projects []model.Project) Capacity {
	var first, last *model.Date
	for _, p := range projects {
		if p.Start == nil || p.End == nil {
			continue
		}
		if first == nil || p.Start.Before(*first) {
			first = p.Start
		}
		if last == nil || last.Before(*p.End) {
			last = p.End
		}
	}
	if first == nil || last.Before(*first) {
		return Capacity{Recommended: defaultCapacity}
	}

	days := first.DaysUntil(*last) + 1
	daily := make([]float64, days)
	for _, p := range projects {
		if p.Start == nil || p.End == nil {
			continue
		}
		from := max(0, first.DaysUntil(*p.Start))
		to := min(days-1, first.DaysUntil(*p.End))
		for d := from; d <= to; d++ {
			daily[d]++
		}
	}

	_, most := minMax(daily)
	avg, _ := mean(daily)
	recommended := 1
	if p75, ok := percentile(daily, capacityPercentile); ok {
		recommended = max(int(round(p75, 0)), 1)
	}
	return Capacity{
		HistoricalMax:  model.Ptr(int(most)),
		HistoricalMean: model.Ptr(round(avg, 1)),
		Recommended:    recommended,
	}
}

// recommendedResources averages the resource count of finished projects.
// Without resource data it falls back to one resource per 15 days or per
// 5000 of budget, whichever is larger.
func recommendedResources(finished []model.Project, meanDuration float64, budgets []float64) float64 {
	counts := make([]float64, 0, len(finished))
	withResources := false
	for _, p := range finished {
		counts = append(counts, float64(p.TotalResources))
		if p.TotalResources > 0 {
			withResources = true
		}
	}
	if withResources {
		avg, _ := mean(counts)
		return round(avg, 1)
	}
	if meanBudget, ok := mean(budgets); ok {
		return round(max(meanDuration/daysPerResource, meanBudget/budgetPerResource), 1)
	}
	return defaultResources
}
