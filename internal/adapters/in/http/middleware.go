package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const errorContextKey = "fulfillment.error"

// RequestLogger writes one zerolog event per request. Server errors and sink
// failures are logged with the error that caused them.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			err := v.Error
			if cause, ok := c.Get(errorContextKey).(error); ok {
				err = cause
			}

			event := log.Info()
			switch {
			case v.Status >= 500:
				event = log.Error().Err(err)
			case v.Status >= 400:
				event = log.Warn()
			}

			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// RateLimiter limits each client IP to rps requests per second with a burst
// of twice that. A non-positive rps disables limiting.
func RateLimiter(rps float64) echo.MiddlewareFunc {
	if rps <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     max(1, int(2*rps)),
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiter(store)
}
