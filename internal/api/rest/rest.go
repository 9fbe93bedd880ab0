package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/middleware"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/ratelimit"
)

// SetupRoutes configures all REST API routes. redeemLimiter throttles member redemptions and may be nil.
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator, redeemLimiter *ratelimit.KeyedLimiter) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// Redemption address encoded in the QR code (member, header or session cookie)
	router.GET("/checkin", middleware.AuthOrSession(auth), middleware.RateLimit(redeemLimiter), handler.RedeemAddress)

	v1 := router.Group("/api/v1")
	{
		// Member check-in
		v1.POST("/checkin", middleware.Auth(auth), middleware.RateLimit(redeemLimiter), handler.Redeem)

		// Operator endpoints
		events := v1.Group("/events/:event_id", middleware.Auth(auth), middleware.RequireOperator(auth))
		{
			events.POST("/token/rotate", handler.RotateToken)
			events.GET("/token", handler.GetCurrentToken)
			events.GET("/qr.png", handler.GetQRCode)

			events.POST("/attendance/manual", handler.RecordManual)
			events.POST("/attendance/manual/batch", handler.RecordManualBatch)
			events.GET("/attendance", handler.ListAttendance)
		}
	}
}
