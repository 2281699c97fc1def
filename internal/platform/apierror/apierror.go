package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error es el error tipado que viaja desde los servicios hasta el Forwarder.
// Message es el texto que ve el cliente; Err (opcional) es la causa interna.
type Error struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por status code contra los sentinels de este paquete,
// así errors.Is(err, apierror.ErrNotFound) funciona con cualquier mensaje.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message != "" && t.Message != e.Message {
		return false
	}
	return t.StatusCode == e.StatusCode
}

var (
	ErrBadRequest   = &Error{StatusCode: http.StatusBadRequest}
	ErrUnauthorized = &Error{StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &Error{StatusCode: http.StatusForbidden}
	ErrNotFound     = &Error{StatusCode: http.StatusNotFound}
	ErrConflict     = &Error{StatusCode: http.StatusConflict}
	ErrInternal     = &Error{StatusCode: http.StatusInternalServerError}
)

func New(status int, msg string) *Error {
	return &Error{Message: msg, StatusCode: status}
}

// Wrap conserva err como causa. Si err ya es *Error se devuelve tal cual.
func Wrap(err error, status int, msg string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Message: msg, StatusCode: status, Err: err}
}

func BadRequest(msg string) *Error   { return New(http.StatusBadRequest, msg) }
func Unauthorized(msg string) *Error { return New(http.StatusUnauthorized, msg) }
func Forbidden(msg string) *Error    { return New(http.StatusForbidden, msg) }
func NotFound(msg string) *Error     { return New(http.StatusNotFound, msg) }
func Conflict(msg string) *Error     { return New(http.StatusConflict, msg) }

// Internal envuelve fallas inesperadas (store caído, etc.).
func Internal(err error) error {
	return Wrap(err, http.StatusInternalServerError, "internal error")
}

// StatusOf devuelve el status HTTP de err; 500 si no es un *Error.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.StatusCode != 0 {
		return ae.StatusCode
	}
	return http.StatusInternalServerError
}
