package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// Recovery returns middleware that recovers from panics, logs the error
// with a stack trace and the request id, and responds with 500.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					attrs := []any{
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					}
					if reqID := ctxutil.RequestIDFromCtx(r.Context()); reqID != "" {
						attrs = append(attrs, slog.String("request_id", reqID))
					}
					logger.ErrorContext(r.Context(), "panic recovered", attrs...)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
