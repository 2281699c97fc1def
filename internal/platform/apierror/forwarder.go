package apierror

import (
	"encoding/json"
	"errors"
	"net/http"

	"cat-registry/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// HandlerFunc es un handler que no renderiza errores: los devuelve.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Forwarder es el único lugar donde se renderizan errores hacia el cliente.
type Forwarder struct {
	log logger.Logger
}

func NewForwarder(log logger.Logger) *Forwarder {
	if log == nil {
		log = logger.Nop()
	}
	return &Forwarder{log: log}
}

type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Handle adapta un HandlerFunc a http.HandlerFunc.
func (f *Forwarder) Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			f.Write(w, r, err)
		}
	}
}

func (f *Forwarder) Write(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	msg := "internal error"

	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		msg = ae.Message
	}

	fields := map[string]any{
		"status":     status,
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": chimw.GetReqID(r.Context()),
		"error":      err.Error(),
	}
	if status >= http.StatusInternalServerError {
		f.log.Error("request failed", fields)
	} else {
		f.log.Debug("request rejected", fields)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Message: msg, Status: status})
}
