package api

import (
	"strings"
	"time"

	"github.com/creativeminds/analytics/pkg/logger"
)

const (
	defaultPrefix         = "/api"
	defaultRequestTimeout = 30 * time.Second
)

// Option configures a Server.
type Option func(*Server)

// WithPrefix mounts the analytics routes under prefix. An empty prefix
// mounts them at the root.
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		s.prefix = strings.TrimRight(prefix, "/")
	}
}

// WithRequestTimeout bounds each analytics request. Non-positive values are ignored.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithCORSOrigins sets the browser origins allowed to call the API.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.cors = newCORSPolicy(origins)
	}
}

// WithLogger sets the logger used for failed requests.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
