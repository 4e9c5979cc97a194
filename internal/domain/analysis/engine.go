// Package analysis turns extracted project-management records into metrics,
// health classifications, SWOT findings, recommendations, trends and
// predictions.
//
// Every Engine method is a pure function of its arguments and the engine's
// clock. The engine holds no mutable state and is safe for concurrent use.
package analysis

import (
	"time"

	"github.com/creativeminds/analytics/internal/domain/model"
)

// Default engine configuration constants.
const (
	defaultRecommendationLimit = 10
	minRecommendationLimit     = 2
	defaultTopProjects         = 5
)

// Clock supplies "now" for every today-relative calculation.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Engine computes reports over typed records.
type Engine struct {
	clock               Clock
	recommendationLimit int
	topProjects         int
}

// NewEngine creates an analysis engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:               SystemClock,
		recommendationLimit: defaultRecommendationLimit,
		topProjects:         defaultTopProjects,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the current calendar day according to the engine's clock.
func (e *Engine) Today() model.Date {
	return model.DateOf(e.clock.Now())
}
