package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrReport        = errors.New("report failed")
	ErrUnknownReport = errors.New("unknown report")
	ErrNoStore       = errors.New("service has no store")
)
