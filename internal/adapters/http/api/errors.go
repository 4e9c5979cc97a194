package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/creativeminds/analytics/internal/adapters/repository"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrInternal   = errors.New("internal error")
)

// Error codes carried in the "code" field of error bodies.
const (
	codeBadRequest  = "bad_request"
	codeNotFound    = "not_found"
	codeUnavailable = "unavailable"
	codeInternal    = "internal_error"
)

const projectNotFoundMessage = "Proyecto no encontrado"

// opError ties an error kind to the handler operation that produced it.
type opError struct {
	Op   string
	Kind error
	Err  error
}

func (e *opError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *opError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewKind returns an error of the given kind with no underlying cause.
func NewKind(op string, kind error) error {
	return &opError{Op: op, Kind: kind}
}

// Wrap marks err as an internal failure of op. A nil err stays nil.
func Wrap(op string, err error) error {
	return WrapKind(op, ErrInternal, err)
}

// WrapKind attaches kind and op to err. A nil err stays nil.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return &opError{Op: op, Kind: kind, Err: err}
}

// cause returns the innermost message worth showing to a client.
func cause(err error) string {
	var oe *opError
	if errors.As(err, &oe) && oe.Err != nil {
		return oe.Err.Error()
	}
	return err.Error()
}

// classify maps an error onto an HTTP status, an error code and a message.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, codeBadRequest, cause(err)
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, codeNotFound, projectNotFoundMessage
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusInternalServerError, codeUnavailable, cause(err)
	default:
		return http.StatusInternalServerError, codeInternal, cause(err)
	}
}
