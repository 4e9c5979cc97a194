package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL   string        // Base URL of the service, e.g. http://localhost:5000
	Prefix    string        // Prefix the analytics routes are mounted under
	ProjectID int64         // Project used for the detail route; 0 skips it
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
}

// Result is the outcome of one route.
type Result struct {
	Path     string        `json:"path" yaml:"path"`
	Status   int           `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Err      string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the route answered 2xx.
func (r Result) OK() bool {
	return r.Err == "" && r.Status >= 200 && r.Status < 300
}

// Summary aggregates a probe run.
type Summary struct {
	Results  []Result      `json:"results" yaml:"results"`
	Failed   int           `json:"failed" yaml:"failed"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}
