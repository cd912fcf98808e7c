package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDKey is the header and context key carrying the request ID
const RequestIDKey = "X-Request-ID"

// FromContext returns the global logger annotated with the request ID
// stored on the echo context, when present.
func FromContext(c echo.Context) *zap.Logger {
	log := GetLogger()
	if requestID, ok := c.Get(RequestIDKey).(string); ok && requestID != "" {
		return log.With(zap.String("request_id", requestID))
	}
	return log
}
