package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrlokans/bookapi/internal/audit"
	"github.com/mrlokans/bookapi/internal/database"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Context keys set by the middleware in this file.
const (
	ContextKeyRequestID = "request_id"
	ContextKeyLogger    = "logger"
	ContextKeySession   = "db_session"
)

// RequestContextMiddleware assigns a request id (reusing a client supplied
// one) and makes the logger available to handlers.
func RequestContextMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Set(ContextKeyLogger, log)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLoggerMiddleware logs one line per request once it has been served.
func RequestLoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", requestID(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// SessionMiddleware acquires a store session for the request and releases
// it when the request ends, whatever the outcome.
func SessionMiddleware(db *database.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := db.Acquire(c.Request.Context())
		defer session.Release()

		c.Set(ContextKeySession, session)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) (*database.Session, bool) {
	v, ok := c.Get(ContextKeySession)
	if !ok {
		return nil, false
	}
	session, ok := v.(*database.Session)
	return session, ok
}

func loggerFrom(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(ContextKeyLogger); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}

func requestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

func requestMeta(c *gin.Context) audit.RequestMeta {
	return audit.RequestMeta{
		RequestID: requestID(c),
		IPAddress: c.ClientIP(),
	}
}
