package middle

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	zap "go.uber.org/zap"
)

// SlowRequest is the duration after which a request is logged as slow.
var SlowRequest = 10 * time.Second

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain wraps next with the given middlewares, the first one outermost.
func Chain(next http.RoundTripper, mws ...func(http.RoundTripper) http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		next = mws[i](next)
	}
	return next
}

// RequestIDMiddleware stamps each outgoing request with a unique X-Request-ID
// unless the caller already set one.
func RequestIDMiddleware() func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("X-Request-ID") != "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set("X-Request-ID", generateRequestID())
			return next.RoundTrip(r)
		})
	}
}

// LoggingMiddleware logs each outgoing request & its duration.
func LoggingMiddleware(logger *zap.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)
			duration := time.Since(start)

			fields := []zap.Field{
				zap.String("request_id", r.Header.Get("X-Request-ID")),
				zap.String("method", r.Method),
				zap.String("host", r.URL.Host),
				zap.String("path", r.URL.EscapedPath()),
				zap.Duration("duration", duration),
			}
			if err != nil {
				logger.Warn("Request failed", append(fields, zap.Error(err))...)
				return nil, err
			}
			logger.Debug("Request completed", append(fields, zap.Int("status", resp.StatusCode))...)

			// Log slow requests
			if duration > SlowRequest {
				logger.Warn("Slow request", fields...)
			}
			return resp, nil
		})
	}
}

func generateRequestID() string {
	return "req-" + uuid.New().String()
}
