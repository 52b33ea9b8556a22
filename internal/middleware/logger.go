package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every request and recovers from panics with a generic 500.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})

				entry(c, start).
					WithField("status", http.StatusInternalServerError).
					WithField("panic", fmt.Sprintf("%v", recovered)).
					WithField("stack", string(debug.Stack())).
					Error("request panicked")
				return
			}

			e := entry(c, start)
			for _, err := range c.Errors {
				e = e.WithError(err.Err)
			}

			switch status := c.Writer.Status(); {
			case status >= http.StatusInternalServerError:
				e.Error("request failed")
			case status >= http.StatusBadRequest:
				e.Warn("request rejected")
			default:
				e.Info("request processed")
			}
		}()

		c.Next()
	}
}

func entry(c *gin.Context, start time.Time) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"query":      c.Request.URL.RawQuery,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start),
		"client_ip":  c.ClientIP(),
		"user_id":    c.GetInt64(ContextUserID),
		"request_id": requestID(c),
	})
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}
