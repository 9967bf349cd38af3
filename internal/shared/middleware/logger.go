package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"smartlibrary-backend/internal/shared/policy"
)

// Logger emits one structured line per request, carrying the correlation ID
// set by RequestID and the authenticated actor when Auth ran before it.
// Server errors log at error level so they stand out from routine traffic.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency_ms", time.Since(start)).
			Int("bytes", c.Writer.Size()).
			Str("ip", c.ClientIP())

		if query != "" {
			event.Str("query", query)
		}
		if actor, ok := policy.ActorFromContext(c.Request.Context()); ok {
			event.Str("actor", actor.Name)
		}

		event.Msg("request completed")
	}
}
