package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	pkglogger "github.com/hostelhub/server/pkg/logger"
)

// RecoveryMiddleware provides panic recovery with detailed logging
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					// prefer the trace-scoped logger when the request carries one
					lg := logger
					if ctxLogger := pkglogger.From(r.Context()); ctxLogger != nil {
						lg = ctxLogger
					}
					lg.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					fmt.Fprintf(w, `{"error": "Internal server error", "message": "panic: %v"}`, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
