package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hostelhub/server/pkg/logger"
)

const TraceIDHeader = "X-Trace-ID"

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		// propagate back to response, and scope the context logger
		w.Header().Set(TraceIDHeader, traceID)
		ctx := logger.With(r.Context(), "trace_id", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
