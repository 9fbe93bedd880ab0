package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/errors"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/ratelimit"
)

// RateLimit throttles requests per authenticated subject, falling back to the client IP.
// A nil limiter disables throttling. Must run after Auth.
func RateLimit(l *ratelimit.KeyedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		key := SubjectFromContext(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		if !l.Allow(key) {
			logger.WarnCtx(c.Request.Context(), "Rate limited",
				zap.String("key", key),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, apierrors.NewRateLimitedError())
			c.Abort()
			return
		}

		c.Next()
	}
}
