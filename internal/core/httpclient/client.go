package httpclient

import (
	"net/http"
	"time"

	"repair-tracker/internal/core/logger"

	"go.uber.org/zap"
)

// LoggingRoundTripper adds static headers to every request and logs it.
// Query strings are never logged: lookups carry national ids and phone numbers.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// Headers are set on every outgoing request, e.g. API credentials.
	Headers http.Header
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(lrt.Headers) > 0 {
		req = req.Clone(req.Context())
		for key, values := range lrt.Headers {
			req.Header[key] = values
		}
	}

	start := time.Now()
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("host", req.URL.Host),
		zap.String("path", req.URL.Path),
	}

	logger.Get().Debug("HTTP Request Started", fields...)

	resp, err := lrt.Proxied.RoundTrip(req)

	fields = append(fields, zap.Duration("duration", time.Since(start)))

	if err != nil {
		logger.Get().Error("HTTP Request Failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	logger.Get().Debug("HTTP Request Completed", append(fields, zap.Int("status_code", resp.StatusCode))...)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware. A zero timeout
// leaves requests unbounded.
func NewClient(timeout time.Duration, headers http.Header) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
			Headers: headers,
		},
		Timeout: timeout,
	}
}
