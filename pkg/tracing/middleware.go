package tracing

import (
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// NewTracingMiddleware continues (or starts) a trace from the incoming
// request headers and records method, URL and status on the span.
func NewTracingMiddleware(t Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := t.StartSpanFromHeader(r.Context(), r.Header, "middleware")
			defer span.End()

			r = r.WithContext(ctx)
			rw := NewResponseWriter(w)
			next.ServeHTTP(rw, r)

			span.SetAttributes(
				attribute.String("http.method", strings.ToUpper(r.Method)),
				attribute.String("http.url", r.URL.String()),
				attribute.String("http.status_code", fmt.Sprintf("%d", rw.Status())),
			)

			t.InjectHTTP(ctx, w.Header())
		})
	}
}

// NewResponseWriter wraps a http.ResponseWriter so the middleware can read
// the status code after the handler ran.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

type ResponseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *ResponseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Status returns the written status code, or 200 if the handler never wrote
// a header (the HTTP default).
func (rw *ResponseWriter) Status() int {
	return rw.status
}
