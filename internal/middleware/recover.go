package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"cat-registry/internal/platform/apierror"
	"cat-registry/internal/platform/logger"
)

// Recover convierte un panic en 500 vía el Forwarder (mismo formato que el resto de errores).
func Recover(log logger.Logger, fwd *apierror.Forwarder) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", map[string]any{
					"panic": fmt.Sprint(rec),
					"path":  r.URL.Path,
					"stack": string(debug.Stack()),
				})
				fwd.Write(w, r, apierror.Internal(fmt.Errorf("panic: %v", rec)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
