package repository

import "time"

const (
	defaultQueryTimeout = 5 * time.Second
	defaultMaxOpenConns = 10
)

// Option applies a configuration option to the SQLStore.
type Option func(*SQLStore)

// WithQueryTimeout bounds every query issued by the store.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(s *SQLStore) {
		if timeout > 0 {
			s.queryTimeout = timeout
		}
	}
}

// WithMaxOpenConns caps the connection pool. Zero leaves it unlimited.
func WithMaxOpenConns(n int) Option {
	return func(s *SQLStore) {
		if n >= 0 {
			s.maxOpenConns = n
		}
	}
}
