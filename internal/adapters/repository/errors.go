package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrUnavailable = errors.New("database unavailable")
	ErrQuery       = errors.New("query failed")
)
