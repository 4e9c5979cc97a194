package analysis

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock sets the source of "today".
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithRecommendationLimit caps the organization recommendation list.
// Values below 2 are ignored since the two closing best practices always fit.
func WithRecommendationLimit(n int) Option {
	return func(e *Engine) {
		if n >= minRecommendationLimit {
			e.recommendationLimit = n
		}
	}
}

// WithTopProjects sets how many projects the dashboard highlights.
func WithTopProjects(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topProjects = n
		}
	}
}
